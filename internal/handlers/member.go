package handlers

import (
	"errors"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/veljkom/taskboard-api/internal/middleware"
	"github.com/veljkom/taskboard-api/internal/models"
	"github.com/veljkom/taskboard-api/internal/services"
	"github.com/veljkom/taskboard-api/pkg/dto"
)

type MemberHandler struct {
	memberService MemberServiceInterface
}

func NewMemberHandler(memberService MemberServiceInterface) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

func (h *MemberHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.QueryParam("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	ctx := c.Request.Context()

	if _, err := h.memberService.Resolve(ctx, workspaceID, userID); err != nil {
		if errors.Is(err, services.ErrNotMember) {
			c.Unauthorized("unauthorized")
			return
		}
		c.InternalServerError("failed to resolve membership")
		return
	}

	members, err := h.memberService.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		c.InternalServerError("failed to get members")
		return
	}

	response := make([]dto.MemberResponse, len(members))
	for i, m := range members {
		response[i] = dto.MemberResponse{
			ID:          m.ID,
			WorkspaceID: m.WorkspaceID,
			UserID:      m.UserID,
			Role:        string(m.Role),
			Name:        m.Name,
			Email:       m.Email,
			CreatedAt:   m.CreatedAt,
		}
	}

	_ = c.JSON(200, response)
}

func (h *MemberHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		c.BadRequest("invalid member id")
		return
	}

	var req dto.UpdateMemberRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	role := models.MemberRole(req.Role)
	if !role.IsValid() {
		c.BadRequest("invalid role")
		return
	}

	member, err := h.memberService.UpdateRole(c.Request.Context(), memberID, role, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMemberNotFound):
			c.NotFound("member not found")
		case errors.Is(err, services.ErrNotMember):
			c.Unauthorized("unauthorized")
		case errors.Is(err, services.ErrLastMember):
			c.BadRequest("cannot downgrade the only member")
		default:
			c.InternalServerError("failed to update member")
		}
		return
	}

	_ = c.JSON(200, dto.MemberResponse{
		ID:          member.ID,
		WorkspaceID: member.WorkspaceID,
		UserID:      member.UserID,
		Role:        string(member.Role),
		CreatedAt:   member.CreatedAt,
	})
}

func (h *MemberHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		c.BadRequest("invalid member id")
		return
	}

	if err := h.memberService.Remove(c.Request.Context(), memberID, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrMemberNotFound):
			c.NotFound("member not found")
		case errors.Is(err, services.ErrNotMember):
			c.Unauthorized("unauthorized")
		case errors.Is(err, services.ErrLastMember):
			c.BadRequest("cannot remove the only member")
		default:
			c.InternalServerError("failed to remove member")
		}
		return
	}

	_ = c.JSON(200, map[string]any{"id": memberID})
}
