package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veljkom/taskboard-api/internal/database"
	"github.com/veljkom/taskboard-api/internal/models"
)

func setupWorkspaceService(t *testing.T) (*WorkspaceService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewWorkspaceService(db, NewMemberService(db)), mock
}

func TestWorkspaceService_Create(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	userID := uuid.New()
	workspaceID := uuid.New()
	name := "My Workspace"
	now := time.Now()

	mock.ExpectBegin()

	rows := pgxmock.NewRows([]string{"id", "name", "image_url", "invite_code", "created_at", "updated_at"}).
		AddRow(workspaceID, name, nil, "aB3xY9", now, now)
	mock.ExpectQuery(`INSERT INTO workspaces \(name, image_url, invite_code\)`).
		WithArgs(name, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(rows)

	mock.ExpectExec(`INSERT INTO members`).
		WithArgs(workspaceID, userID, models.RoleAdmin).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	mock.ExpectCommit()

	ws, err := svc.Create(ctx, name, nil, userID)

	require.NoError(t, err)
	assert.Equal(t, workspaceID, ws.ID)
	assert.Equal(t, name, ws.Name)
	assert.NotEmpty(t, ws.InviteCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_GetByID(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "name", "image_url", "invite_code", "created_at", "updated_at"}).
		AddRow(workspaceID, "Test Workspace", nil, "aB3xY9", now, now)

	mock.ExpectQuery(`SELECT .+ FROM workspaces WHERE id`).
		WithArgs(workspaceID).
		WillReturnRows(rows)

	ws, err := svc.GetByID(ctx, workspaceID)

	require.NoError(t, err)
	assert.Equal(t, workspaceID, ws.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_GetByID_NotFound(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM workspaces WHERE id`).
		WithArgs(workspaceID).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetByID(ctx, workspaceID)

	assert.ErrorIs(t, err, ErrWorkspaceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_GetUserWorkspaces(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "name", "image_url", "invite_code", "created_at", "updated_at"}).
		AddRow(uuid.New(), "Workspace 1", nil, "code01", now, now).
		AddRow(uuid.New(), "Workspace 2", nil, "code02", now, now)

	mock.ExpectQuery(`SELECT .+ FROM workspaces w\s+JOIN members m`).
		WithArgs(userID).
		WillReturnRows(rows)

	workspaces, err := svc.GetUserWorkspaces(ctx, userID)

	require.NoError(t, err)
	assert.Len(t, workspaces, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_Update(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	newName := "Updated Workspace"
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "name", "image_url", "invite_code", "created_at", "updated_at"}).
		AddRow(workspaceID, newName, nil, "aB3xY9", now, now)

	mock.ExpectQuery(`UPDATE workspaces SET name`).
		WithArgs(newName, pgxmock.AnyArg(), workspaceID).
		WillReturnRows(rows)

	ws, err := svc.Update(ctx, workspaceID, newName, nil)

	require.NoError(t, err)
	assert.Equal(t, newName, ws.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_Delete(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()

	mock.ExpectExec(`DELETE FROM workspaces WHERE id`).
		WithArgs(workspaceID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := svc.Delete(ctx, workspaceID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_ResetInviteCode(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "name", "image_url", "invite_code", "created_at", "updated_at"}).
		AddRow(workspaceID, "Test Workspace", nil, "zZ9yX8", now, now)

	mock.ExpectQuery(`UPDATE workspaces SET invite_code`).
		WithArgs(pgxmock.AnyArg(), workspaceID).
		WillReturnRows(rows)

	ws, err := svc.ResetInviteCode(ctx, workspaceID)

	require.NoError(t, err)
	assert.Equal(t, "zZ9yX8", ws.InviteCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_Join(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM members WHERE workspace_id = \$1 AND user_id = \$2`).
		WithArgs(workspaceID, userID).
		WillReturnError(pgx.ErrNoRows)

	wsRows := pgxmock.NewRows([]string{"id", "name", "image_url", "invite_code", "created_at", "updated_at"}).
		AddRow(workspaceID, "Test Workspace", nil, "aB3xY9", now, now)
	mock.ExpectQuery(`SELECT .+ FROM workspaces WHERE id`).
		WithArgs(workspaceID).
		WillReturnRows(wsRows)

	memberRows := pgxmock.NewRows([]string{"id", "workspace_id", "user_id", "role", "created_at"}).
		AddRow(uuid.New(), workspaceID, userID, models.RoleMember, now)
	mock.ExpectQuery(`INSERT INTO members`).
		WithArgs(workspaceID, userID, models.RoleMember).
		WillReturnRows(memberRows)

	ws, err := svc.Join(ctx, workspaceID, userID, "aB3xY9")

	require.NoError(t, err)
	assert.Equal(t, workspaceID, ws.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_Join_AlreadyMember(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "workspace_id", "user_id", "role", "created_at"}).
		AddRow(uuid.New(), workspaceID, userID, models.RoleMember, now)
	mock.ExpectQuery(`SELECT .+ FROM members WHERE workspace_id = \$1 AND user_id = \$2`).
		WithArgs(workspaceID, userID).
		WillReturnRows(rows)

	_, err := svc.Join(ctx, workspaceID, userID, "aB3xY9")

	assert.ErrorIs(t, err, ErrAlreadyMember)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceService_Join_WrongCode(t *testing.T) {
	svc, mock := setupWorkspaceService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM members WHERE workspace_id = \$1 AND user_id = \$2`).
		WithArgs(workspaceID, userID).
		WillReturnError(pgx.ErrNoRows)

	wsRows := pgxmock.NewRows([]string{"id", "name", "image_url", "invite_code", "created_at", "updated_at"}).
		AddRow(workspaceID, "Test Workspace", nil, "aB3xY9", now, now)
	mock.ExpectQuery(`SELECT .+ FROM workspaces WHERE id`).
		WithArgs(workspaceID).
		WillReturnRows(wsRows)

	_, err := svc.Join(ctx, workspaceID, userID, "wrong!")

	assert.ErrorIs(t, err, ErrInvalidInviteCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateInviteCode(t *testing.T) {
	code, err := generateInviteCode(inviteCodeLength)
	require.NoError(t, err)
	assert.Len(t, code, inviteCodeLength)

	other, err := generateInviteCode(inviteCodeLength)
	require.NoError(t, err)
	assert.NotEqual(t, code, other)
}
