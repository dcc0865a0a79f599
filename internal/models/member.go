package models

import (
	"time"

	"github.com/google/uuid"
)

type MemberRole string

const (
	RoleAdmin  MemberRole = "ADMIN"
	RoleMember MemberRole = "MEMBER"
)

func (r MemberRole) IsValid() bool {
	return r == RoleAdmin || r == RoleMember
}

type Member struct {
	ID          uuid.UUID  `json:"id"`
	WorkspaceID uuid.UUID  `json:"workspace_id"`
	UserID      uuid.UUID  `json:"user_id"`
	Role        MemberRole `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Assignee is a member enriched with its user's identity fields. Read-side
// only; never persisted.
type Assignee struct {
	Member
	Name  string `json:"name"`
	Email string `json:"email"`
}
