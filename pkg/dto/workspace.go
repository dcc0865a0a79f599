package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateWorkspaceRequest struct {
	Name     string  `json:"name"`
	ImageURL *string `json:"image_url,omitempty"`
}

type UpdateWorkspaceRequest struct {
	Name     string  `json:"name"`
	ImageURL *string `json:"image_url,omitempty"`
}

type JoinWorkspaceRequest struct {
	Code string `json:"code"`
}

type WorkspaceResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	ImageURL   *string   `json:"image_url,omitempty"`
	InviteCode string    `json:"invite_code"`
	CreatedAt  time.Time `json:"created_at"`
}
