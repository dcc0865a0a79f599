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

type WorkspaceHandler struct {
	workspaceService WorkspaceServiceInterface
	memberService    MemberServiceInterface
}

func NewWorkspaceHandler(workspaceService WorkspaceServiceInterface, memberService MemberServiceInterface) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
		memberService:    memberService,
	}
}

func workspaceResponse(w *models.Workspace) dto.WorkspaceResponse {
	return dto.WorkspaceResponse{
		ID:         w.ID,
		Name:       w.Name,
		ImageURL:   w.ImageURL,
		InviteCode: w.InviteCode,
		CreatedAt:  w.CreatedAt,
	}
}

func (h *WorkspaceHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateWorkspaceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	workspace, err := h.workspaceService.Create(c.Request.Context(), req.Name, req.ImageURL, userID)
	if err != nil {
		c.InternalServerError("failed to create workspace")
		return
	}

	_ = c.JSON(201, workspaceResponse(workspace))
}

func (h *WorkspaceHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaces, err := h.workspaceService.GetUserWorkspaces(c.Request.Context(), userID)
	if err != nil {
		c.InternalServerError("failed to get workspaces")
		return
	}

	response := make([]dto.WorkspaceResponse, len(workspaces))
	for i, w := range workspaces {
		response[i] = workspaceResponse(&w)
	}

	_ = c.JSON(200, response)
}

func (h *WorkspaceHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
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

	workspace, err := h.workspaceService.GetByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, services.ErrWorkspaceNotFound) {
			c.NotFound("workspace not found")
			return
		}
		c.InternalServerError("failed to get workspace")
		return
	}

	_ = c.JSON(200, workspaceResponse(workspace))
}

func (h *WorkspaceHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	var req dto.UpdateWorkspaceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	ctx := c.Request.Context()

	member, err := h.memberService.Resolve(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotMember) {
			c.Unauthorized("unauthorized")
			return
		}
		c.InternalServerError("failed to resolve membership")
		return
	}
	if err := services.RequireRole(member, models.RoleAdmin); err != nil {
		c.Unauthorized("unauthorized")
		return
	}

	workspace, err := h.workspaceService.Update(ctx, workspaceID, req.Name, req.ImageURL)
	if err != nil {
		if errors.Is(err, services.ErrWorkspaceNotFound) {
			c.NotFound("workspace not found")
			return
		}
		c.InternalServerError("failed to update workspace")
		return
	}

	_ = c.JSON(200, workspaceResponse(workspace))
}

func (h *WorkspaceHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	ctx := c.Request.Context()

	member, err := h.memberService.Resolve(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotMember) {
			c.Unauthorized("unauthorized")
			return
		}
		c.InternalServerError("failed to resolve membership")
		return
	}
	if err := services.RequireRole(member, models.RoleAdmin); err != nil {
		c.Unauthorized("unauthorized")
		return
	}

	if err := h.workspaceService.Delete(ctx, workspaceID); err != nil {
		c.InternalServerError("failed to delete workspace")
		return
	}

	_ = c.JSON(200, map[string]any{"id": workspaceID})
}

func (h *WorkspaceHandler) ResetInviteCode(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	ctx := c.Request.Context()

	member, err := h.memberService.Resolve(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotMember) {
			c.Unauthorized("unauthorized")
			return
		}
		c.InternalServerError("failed to resolve membership")
		return
	}
	if err := services.RequireRole(member, models.RoleAdmin); err != nil {
		c.Unauthorized("unauthorized")
		return
	}

	workspace, err := h.workspaceService.ResetInviteCode(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, services.ErrWorkspaceNotFound) {
			c.NotFound("workspace not found")
			return
		}
		c.InternalServerError("failed to reset invite code")
		return
	}

	_ = c.JSON(200, workspaceResponse(workspace))
}

func (h *WorkspaceHandler) Join(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	var req dto.JoinWorkspaceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Code == "" {
		c.BadRequest("code is required")
		return
	}

	workspace, err := h.workspaceService.Join(c.Request.Context(), workspaceID, userID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyMember):
			c.BadRequest("already a member")
		case errors.Is(err, services.ErrInvalidInviteCode):
			c.BadRequest("invalid invite code")
		case errors.Is(err, services.ErrWorkspaceNotFound):
			c.NotFound("workspace not found")
		default:
			c.InternalServerError("failed to join workspace")
		}
		return
	}

	_ = c.JSON(200, workspaceResponse(workspace))
}
