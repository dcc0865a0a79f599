package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/veljkom/taskboard-api/internal/database"
	"github.com/veljkom/taskboard-api/internal/models"
)

var (
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrAlreadyMember     = errors.New("user is already a workspace member")
	ErrInvalidInviteCode = errors.New("invalid invite code")
)

const inviteCodeLength = 6

type WorkspaceService struct {
	db      *database.DB
	members *MemberService
}

func NewWorkspaceService(db *database.DB, members *MemberService) *WorkspaceService {
	return &WorkspaceService{db: db, members: members}
}

// Create inserts the workspace and its first member (the creator, as admin)
// in one transaction, so a workspace never exists without a member.
func (s *WorkspaceService) Create(ctx context.Context, name string, imageURL *string, userID uuid.UUID) (*models.Workspace, error) {
	code, err := generateInviteCode(inviteCodeLength)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var workspace models.Workspace
	err = tx.QueryRow(ctx, `
		INSERT INTO workspaces (name, image_url, invite_code)
		VALUES ($1, $2, $3)
		RETURNING id, name, image_url, invite_code, created_at, updated_at
	`, name, imageURL, code).Scan(
		&workspace.ID, &workspace.Name, &workspace.ImageURL,
		&workspace.InviteCode, &workspace.CreatedAt, &workspace.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO members (workspace_id, user_id, role)
		VALUES ($1, $2, $3)
	`, workspace.ID, userID, models.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to add creator as member: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &workspace, nil
}

func (s *WorkspaceService) GetByID(ctx context.Context, workspaceID uuid.UUID) (*models.Workspace, error) {
	var workspace models.Workspace
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, name, image_url, invite_code, created_at, updated_at
		FROM workspaces WHERE id = $1
	`, workspaceID).Scan(
		&workspace.ID, &workspace.Name, &workspace.ImageURL,
		&workspace.InviteCode, &workspace.CreatedAt, &workspace.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, err
	}
	return &workspace, nil
}

// GetUserWorkspaces lists the workspaces the user is a member of, newest
// first.
func (s *WorkspaceService) GetUserWorkspaces(ctx context.Context, userID uuid.UUID) ([]models.Workspace, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT w.id, w.name, w.image_url, w.invite_code, w.created_at, w.updated_at
		FROM workspaces w
		JOIN members m ON w.id = m.workspace_id
		WHERE m.user_id = $1
		ORDER BY w.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workspaces []models.Workspace
	for rows.Next() {
		var w models.Workspace
		if err := rows.Scan(&w.ID, &w.Name, &w.ImageURL, &w.InviteCode, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		workspaces = append(workspaces, w)
	}
	return workspaces, rows.Err()
}

func (s *WorkspaceService) Update(ctx context.Context, workspaceID uuid.UUID, name string, imageURL *string) (*models.Workspace, error) {
	var workspace models.Workspace
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE workspaces SET name = $1, image_url = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, name, image_url, invite_code, created_at, updated_at
	`, name, imageURL, workspaceID).Scan(
		&workspace.ID, &workspace.Name, &workspace.ImageURL,
		&workspace.InviteCode, &workspace.CreatedAt, &workspace.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &workspace, nil
}

// Delete removes the workspace; members, projects and tasks go with it via
// cascading foreign keys.
func (s *WorkspaceService) Delete(ctx context.Context, workspaceID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, workspaceID)
	return err
}

// ResetInviteCode rotates the invite code, invalidating links already
// handed out.
func (s *WorkspaceService) ResetInviteCode(ctx context.Context, workspaceID uuid.UUID) (*models.Workspace, error) {
	code, err := generateInviteCode(inviteCodeLength)
	if err != nil {
		return nil, err
	}

	var workspace models.Workspace
	err = s.db.Pool.QueryRow(ctx, `
		UPDATE workspaces SET invite_code = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, name, image_url, invite_code, created_at, updated_at
	`, code, workspaceID).Scan(
		&workspace.ID, &workspace.Name, &workspace.ImageURL,
		&workspace.InviteCode, &workspace.CreatedAt, &workspace.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &workspace, nil
}

// Join adds the user as a regular member when the invite code matches.
func (s *WorkspaceService) Join(ctx context.Context, workspaceID, userID uuid.UUID, code string) (*models.Workspace, error) {
	if _, err := s.members.Resolve(ctx, workspaceID, userID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, ErrNotMember) {
		return nil, err
	}

	workspace, err := s.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	if workspace.InviteCode != code {
		return nil, ErrInvalidInviteCode
	}

	if _, err := s.members.Add(ctx, workspaceID, userID, models.RoleMember); err != nil {
		return nil, err
	}

	return workspace, nil
}

const inviteCodeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generateInviteCode(length int) (string, error) {
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(inviteCodeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("failed to generate invite code: %w", err)
		}
		code[i] = inviteCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
