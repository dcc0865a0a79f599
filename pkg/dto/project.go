package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Name        string    `json:"name"`
	ImageURL    *string   `json:"image_url,omitempty"`
}

type UpdateProjectRequest struct {
	Name     string  `json:"name"`
	ImageURL *string `json:"image_url,omitempty"`
}

type ProjectResponse struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Name        string    `json:"name"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
