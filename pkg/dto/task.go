package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	WorkspaceID uuid.UUID `json:"workspace_id"`
	ProjectID   uuid.UUID `json:"project_id"`
	AssigneeID  uuid.UUID `json:"assignee_id"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	DueDate     time.Time `json:"due_date"`
	Description *string   `json:"description,omitempty"`
}

type UpdateTaskRequest struct {
	Name        *string    `json:"name,omitempty"`
	Status      *string    `json:"status,omitempty"`
	ProjectID   *uuid.UUID `json:"project_id,omitempty"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Description *string    `json:"description,omitempty"`
}

type ReorderTaskItem struct {
	ID       uuid.UUID `json:"id"`
	Status   string    `json:"status"`
	Position int       `json:"position"`
}

type BulkUpdateTasksRequest struct {
	Tasks []ReorderTaskItem `json:"tasks"`
}

type TaskResponse struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	ProjectID   uuid.UUID `json:"project_id"`
	AssigneeID  uuid.UUID `json:"assignee_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Position    int       `json:"position"`
	DueDate     time.Time `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// PopulatedTaskResponse carries the task plus its resolved project and
// assignee. Either may be absent when the reference is stale.
type PopulatedTaskResponse struct {
	TaskResponse
	Project  *ProjectResponse `json:"project,omitempty"`
	Assignee *MemberResponse  `json:"assignee,omitempty"`
}

type TaskListResponse struct {
	Tasks []PopulatedTaskResponse `json:"tasks"`
	Total int                     `json:"total"`
}

type DeletedTaskResponse struct {
	ID uuid.UUID `json:"id"`
}
