package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/veljkom/taskboard-api/internal/database"
	"github.com/veljkom/taskboard-api/internal/models"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email: fmt.Sprintf("user%d@example.com", f.counter),
		Name:  fmt.Sprintf("Test User %d", f.counter),
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name)
		VALUES ($1, $2)
		RETURNING id, email, name, created_at, updated_at
	`, user.Email, user.Name).Scan(
		&user.ID, &user.Email, &user.Name, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithName sets the user's name
func WithName(name string) UserOption {
	return func(u *models.User) {
		u.Name = name
	}
}

// CreateWorkspace creates a test workspace with the given user as admin
func (f *Fixtures) CreateWorkspace(t *testing.T, admin *models.User, opts ...WorkspaceOption) *models.Workspace {
	t.Helper()
	f.counter++

	ws := &models.Workspace{
		Name:       fmt.Sprintf("Test Workspace %d", f.counter),
		InviteCode: fmt.Sprintf("CODE%02d", f.counter),
	}

	for _, opt := range opts {
		opt(ws)
	}

	ctx := context.Background()
	tx, err := f.db.Pool.Begin(ctx)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO workspaces (name, image_url, invite_code)
		VALUES ($1, $2, $3)
		RETURNING id, name, image_url, invite_code, created_at, updated_at
	`, ws.Name, ws.ImageURL, ws.InviteCode).Scan(
		&ws.ID, &ws.Name, &ws.ImageURL, &ws.InviteCode, &ws.CreatedAt, &ws.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create workspace: %v", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO members (workspace_id, user_id, role)
		VALUES ($1, $2, $3)
	`, ws.ID, admin.ID, models.RoleAdmin)
	if err != nil {
		t.Fatalf("failed to add admin member: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("failed to commit transaction: %v", err)
	}

	return ws
}

// WorkspaceOption configures a test workspace
type WorkspaceOption func(*models.Workspace)

// WithWorkspaceName sets the workspace name
func WithWorkspaceName(name string) WorkspaceOption {
	return func(w *models.Workspace) {
		w.Name = name
	}
}

// WithInviteCode sets the workspace invite code
func WithInviteCode(code string) WorkspaceOption {
	return func(w *models.Workspace) {
		w.InviteCode = code
	}
}

// AddMember adds a user to a workspace with the given role
func (f *Fixtures) AddMember(t *testing.T, workspace *models.Workspace, user *models.User, role models.MemberRole) *models.Member {
	t.Helper()
	ctx := context.Background()

	member := &models.Member{}
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO members (workspace_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, workspace_id, user_id, role, created_at
	`, workspace.ID, user.ID, role).Scan(
		&member.ID, &member.WorkspaceID, &member.UserID, &member.Role, &member.CreatedAt,
	)
	if err != nil {
		t.Fatalf("failed to add member: %v", err)
	}

	return member
}

// GetMember returns an existing membership row
func (f *Fixtures) GetMember(t *testing.T, workspace *models.Workspace, user *models.User) *models.Member {
	t.Helper()
	ctx := context.Background()

	member := &models.Member{}
	err := f.db.Pool.QueryRow(ctx, `
		SELECT id, workspace_id, user_id, role, created_at
		FROM members WHERE workspace_id = $1 AND user_id = $2
	`, workspace.ID, user.ID).Scan(
		&member.ID, &member.WorkspaceID, &member.UserID, &member.Role, &member.CreatedAt,
	)
	if err != nil {
		t.Fatalf("failed to get member: %v", err)
	}

	return member
}

// CreateProject creates a test project in a workspace
func (f *Fixtures) CreateProject(t *testing.T, workspace *models.Workspace, opts ...ProjectOption) *models.Project {
	t.Helper()
	f.counter++

	project := &models.Project{
		WorkspaceID: workspace.ID,
		Name:        fmt.Sprintf("Test Project %d", f.counter),
	}

	for _, opt := range opts {
		opt(project)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO projects (workspace_id, name, image_url)
		VALUES ($1, $2, $3)
		RETURNING id, workspace_id, name, image_url, created_at, updated_at
	`, project.WorkspaceID, project.Name, project.ImageURL).Scan(
		&project.ID, &project.WorkspaceID, &project.Name, &project.ImageURL,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	return project
}

// ProjectOption configures a test project
type ProjectOption func(*models.Project)

// WithProjectName sets the project name
func WithProjectName(name string) ProjectOption {
	return func(p *models.Project) {
		p.Name = name
	}
}

// CreateTask creates a test task assigned to the given member
func (f *Fixtures) CreateTask(t *testing.T, project *models.Project, assignee *models.Member, opts ...TaskOption) *models.Task {
	t.Helper()
	f.counter++

	task := &models.Task{
		WorkspaceID: project.WorkspaceID,
		ProjectID:   project.ID,
		AssigneeID:  assignee.ID,
		Name:        fmt.Sprintf("Test Task %d", f.counter),
		Status:      models.StatusTodo,
		Position:    models.MinPosition,
		DueDate:     time.Now().Add(7 * 24 * time.Hour),
	}

	for _, opt := range opts {
		opt(task)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO tasks (workspace_id, project_id, assignee_id, name, description, status, position, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, workspace_id, project_id, assignee_id, name, description, status, position, due_date, created_at, updated_at
	`, task.WorkspaceID, task.ProjectID, task.AssigneeID, task.Name, task.Description,
		task.Status, task.Position, task.DueDate).Scan(
		&task.ID, &task.WorkspaceID, &task.ProjectID, &task.AssigneeID, &task.Name,
		&task.Description, &task.Status, &task.Position, &task.DueDate,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	return task
}

// TaskOption configures a test task
type TaskOption func(*models.Task)

// WithTaskName sets the task name
func WithTaskName(name string) TaskOption {
	return func(t *models.Task) {
		t.Name = name
	}
}

// WithStatus sets the task status
func WithStatus(status models.TaskStatus) TaskOption {
	return func(t *models.Task) {
		t.Status = status
	}
}

// WithPosition sets the task position
func WithPosition(position int) TaskOption {
	return func(t *models.Task) {
		t.Position = position
	}
}

// WithDueDate sets the task due date
func WithDueDate(due time.Time) TaskOption {
	return func(t *models.Task) {
		t.DueDate = due
	}
}
