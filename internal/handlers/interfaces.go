package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/veljkom/taskboard-api/internal/models"
	"github.com/veljkom/taskboard-api/internal/query"
	"github.com/veljkom/taskboard-api/internal/services"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error)
}

// WorkspaceServiceInterface defines the methods used by handlers from WorkspaceService
type WorkspaceServiceInterface interface {
	Create(ctx context.Context, name string, imageURL *string, userID uuid.UUID) (*models.Workspace, error)
	GetByID(ctx context.Context, workspaceID uuid.UUID) (*models.Workspace, error)
	GetUserWorkspaces(ctx context.Context, userID uuid.UUID) ([]models.Workspace, error)
	Update(ctx context.Context, workspaceID uuid.UUID, name string, imageURL *string) (*models.Workspace, error)
	Delete(ctx context.Context, workspaceID uuid.UUID) error
	ResetInviteCode(ctx context.Context, workspaceID uuid.UUID) (*models.Workspace, error)
	Join(ctx context.Context, workspaceID, userID uuid.UUID, code string) (*models.Workspace, error)
}

// MemberServiceInterface defines the methods used by handlers from MemberService
type MemberServiceInterface interface {
	Resolve(ctx context.Context, workspaceID, userID uuid.UUID) (*models.Member, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.Assignee, error)
	UpdateRole(ctx context.Context, memberID uuid.UUID, role models.MemberRole, callerUserID uuid.UUID) (*models.Member, error)
	Remove(ctx context.Context, memberID, callerUserID uuid.UUID) error
}

// ProjectServiceInterface defines the methods used by handlers from ProjectService
type ProjectServiceInterface interface {
	Create(ctx context.Context, workspaceID uuid.UUID, name string, imageURL *string) (*models.Project, error)
	GetByID(ctx context.Context, projectID uuid.UUID) (*models.Project, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.Project, error)
	Update(ctx context.Context, projectID uuid.UUID, name string, imageURL *string) (*models.Project, error)
	Delete(ctx context.Context, projectID uuid.UUID) error
}

// TaskServiceInterface defines the methods used by handlers from TaskService
type TaskServiceInterface interface {
	GetByID(ctx context.Context, taskID uuid.UUID) (*models.Task, error)
	List(ctx context.Context, f query.Filter) ([]models.Task, error)
	Populate(ctx context.Context, tasks []models.Task) ([]models.PopulatedTask, error)
	Create(ctx context.Context, workspaceID, projectID, assigneeID uuid.UUID, name string, status models.TaskStatus, dueDate time.Time, description string) (*models.Task, error)
	Update(ctx context.Context, taskID uuid.UUID, upd services.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, taskID uuid.UUID) error
	Reorder(ctx context.Context, callerUserID uuid.UUID, updates []services.ReorderUpdate) ([]models.Task, error)
}
