package models

import (
	"time"

	"github.com/google/uuid"
)

type Workspace struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	ImageURL   *string   `json:"image_url,omitempty"`
	InviteCode string    `json:"invite_code"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
