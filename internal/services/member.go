package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/veljkom/taskboard-api/internal/database"
	"github.com/veljkom/taskboard-api/internal/models"
)

var (
	// ErrNotMember is the uniform authorization failure. Handlers translate
	// it to 401 without revealing whether the target entity exists.
	ErrNotMember = errors.New("not a workspace member")

	ErrMemberNotFound = errors.New("member not found")
	ErrLastMember     = errors.New("workspace must retain at least one member")
)

// RequireRole gates an operation on the caller's role. Failure reads the
// same as not being a member at all.
func RequireRole(member *models.Member, role models.MemberRole) error {
	if member == nil || member.Role != role {
		return ErrNotMember
	}
	return nil
}

type MemberService struct {
	db *database.DB
}

func NewMemberService(db *database.DB) *MemberService {
	return &MemberService{db: db}
}

// Resolve looks up the caller's membership in a workspace. Every workspace-
// scoped operation calls this before touching any other row.
func (s *MemberService) Resolve(ctx context.Context, workspaceID, userID uuid.UUID) (*models.Member, error) {
	var member models.Member
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, workspace_id, user_id, role, created_at
		FROM members WHERE workspace_id = $1 AND user_id = $2
	`, workspaceID, userID).Scan(&member.ID, &member.WorkspaceID, &member.UserID, &member.Role, &member.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotMember
		}
		return nil, err
	}
	return &member, nil
}

func (s *MemberService) GetByID(ctx context.Context, memberID uuid.UUID) (*models.Member, error) {
	var member models.Member
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, workspace_id, user_id, role, created_at
		FROM members WHERE id = $1
	`, memberID).Scan(&member.ID, &member.WorkspaceID, &member.UserID, &member.Role, &member.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

// ListByWorkspace returns the workspace's members enriched with their user's
// name and email.
func (s *MemberService) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.Assignee, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT m.id, m.workspace_id, m.user_id, m.role, m.created_at, u.name, u.email
		FROM members m
		JOIN users u ON m.user_id = u.id
		WHERE m.workspace_id = $1
		ORDER BY m.created_at
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.Assignee
	for rows.Next() {
		var member models.Assignee
		if err := rows.Scan(
			&member.ID, &member.WorkspaceID, &member.UserID, &member.Role, &member.CreatedAt,
			&member.Name, &member.Email,
		); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (s *MemberService) Add(ctx context.Context, workspaceID, userID uuid.UUID, role models.MemberRole) (*models.Member, error) {
	var member models.Member
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO members (workspace_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, workspace_id, user_id, role, created_at
	`, workspaceID, userID, role).Scan(&member.ID, &member.WorkspaceID, &member.UserID, &member.Role, &member.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	return &member, nil
}

// UpdateRole changes a member's role. Admin only; the last remaining member
// of a workspace cannot be touched.
func (s *MemberService) UpdateRole(ctx context.Context, memberID uuid.UUID, role models.MemberRole, callerUserID uuid.UUID) (*models.Member, error) {
	target, err := s.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	caller, err := s.Resolve(ctx, target.WorkspaceID, callerUserID)
	if err != nil {
		return nil, err
	}
	if err := RequireRole(caller, models.RoleAdmin); err != nil {
		return nil, err
	}

	count, err := s.countByWorkspace(ctx, target.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if count == 1 {
		return nil, ErrLastMember
	}

	var member models.Member
	err = s.db.Pool.QueryRow(ctx, `
		UPDATE members SET role = $1
		WHERE id = $2
		RETURNING id, workspace_id, user_id, role, created_at
	`, role, memberID).Scan(&member.ID, &member.WorkspaceID, &member.UserID, &member.Role, &member.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Remove deletes a member. Members may remove themselves; removing anyone
// else takes admin. The last remaining member cannot be removed.
func (s *MemberService) Remove(ctx context.Context, memberID, callerUserID uuid.UUID) error {
	target, err := s.GetByID(ctx, memberID)
	if err != nil {
		return err
	}

	caller, err := s.Resolve(ctx, target.WorkspaceID, callerUserID)
	if err != nil {
		return err
	}
	if caller.ID != target.ID {
		if err := RequireRole(caller, models.RoleAdmin); err != nil {
			return err
		}
	}

	count, err := s.countByWorkspace(ctx, target.WorkspaceID)
	if err != nil {
		return err
	}
	if count == 1 {
		return ErrLastMember
	}

	_, err = s.db.Pool.Exec(ctx, `DELETE FROM members WHERE id = $1`, memberID)
	return err
}

func (s *MemberService) countByWorkspace(ctx context.Context, workspaceID uuid.UUID) (int, error) {
	var count int
	err := s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM members WHERE workspace_id = $1
	`, workspaceID).Scan(&count)
	return count, err
}
