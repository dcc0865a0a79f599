package models

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	StatusBacklog    TaskStatus = "BACKLOG"
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusInReview   TaskStatus = "IN_REVIEW"
	StatusDone       TaskStatus = "DONE"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusBacklog, StatusTodo, StatusInProgress, StatusInReview, StatusDone:
		return true
	}
	return false
}

// Board ordering keys. Positions are spaced by PositionStep so cards can be
// dropped between neighbors without renumbering the bucket.
const (
	MinPosition  = 1000
	MaxPosition  = 1_000_000
	PositionStep = 1000
)

type Task struct {
	ID          uuid.UUID  `json:"id"`
	WorkspaceID uuid.UUID  `json:"workspace_id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	AssigneeID  uuid.UUID  `json:"assignee_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Position    int        `json:"position"`
	DueDate     time.Time  `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// PopulatedTask is a task joined with its project and assignee. A dangling
// reference leaves the field nil.
type PopulatedTask struct {
	Task
	Project  *Project  `json:"project,omitempty"`
	Assignee *Assignee `json:"assignee,omitempty"`
}
