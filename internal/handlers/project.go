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

type ProjectHandler struct {
	projectService ProjectServiceInterface
	memberService  MemberServiceInterface
}

func NewProjectHandler(projectService ProjectServiceInterface, memberService MemberServiceInterface) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		memberService:  memberService,
	}
}

func projectResponse(p *models.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:          p.ID,
		WorkspaceID: p.WorkspaceID,
		Name:        p.Name,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
	}
}

// resolveMember maps membership lookups to the uniform authorization failure.
// Returns false after writing the response when the caller may not proceed.
func resolveMember(c *drift.Context, members MemberServiceInterface, workspaceID, userID uuid.UUID) (*models.Member, bool) {
	member, err := members.Resolve(c.Request.Context(), workspaceID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotMember) {
			c.Unauthorized("unauthorized")
			return nil, false
		}
		c.InternalServerError("failed to resolve membership")
		return nil, false
	}
	return member, true
}

func (h *ProjectHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateProjectRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.WorkspaceID == uuid.Nil {
		c.BadRequest("workspace_id is required")
		return
	}
	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	if _, ok := resolveMember(c, h.memberService, req.WorkspaceID, userID); !ok {
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), req.WorkspaceID, req.Name, req.ImageURL)
	if err != nil {
		c.InternalServerError("failed to create project")
		return
	}

	_ = c.JSON(201, projectResponse(project))
}

func (h *ProjectHandler) List(c *drift.Context) {
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

	if _, ok := resolveMember(c, h.memberService, workspaceID, userID); !ok {
		return
	}

	projects, err := h.projectService.ListByWorkspace(c.Request.Context(), workspaceID)
	if err != nil {
		c.InternalServerError("failed to get projects")
		return
	}

	response := make([]dto.ProjectResponse, len(projects))
	for i, p := range projects {
		response[i] = projectResponse(&p)
	}

	_ = c.JSON(200, response)
}

func (h *ProjectHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	project, err := h.projectService.GetByID(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			c.NotFound("project not found")
			return
		}
		c.InternalServerError("failed to get project")
		return
	}

	if _, ok := resolveMember(c, h.memberService, project.WorkspaceID, userID); !ok {
		return
	}

	_ = c.JSON(200, projectResponse(project))
}

func (h *ProjectHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	ctx := c.Request.Context()

	project, err := h.projectService.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			c.NotFound("project not found")
			return
		}
		c.InternalServerError("failed to get project")
		return
	}

	if _, ok := resolveMember(c, h.memberService, project.WorkspaceID, userID); !ok {
		return
	}

	updated, err := h.projectService.Update(ctx, projectID, req.Name, req.ImageURL)
	if err != nil {
		c.InternalServerError("failed to update project")
		return
	}

	_ = c.JSON(200, projectResponse(updated))
}

func (h *ProjectHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	ctx := c.Request.Context()

	project, err := h.projectService.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			c.NotFound("project not found")
			return
		}
		c.InternalServerError("failed to get project")
		return
	}

	if _, ok := resolveMember(c, h.memberService, project.WorkspaceID, userID); !ok {
		return
	}

	if err := h.projectService.Delete(ctx, projectID); err != nil {
		c.InternalServerError("failed to delete project")
		return
	}

	_ = c.JSON(200, map[string]any{"id": projectID})
}
