package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/veljkom/taskboard-api/internal/middleware"
	"github.com/veljkom/taskboard-api/internal/models"
	"github.com/veljkom/taskboard-api/internal/query"
	"github.com/veljkom/taskboard-api/internal/services"
	"github.com/veljkom/taskboard-api/pkg/dto"
)

type TaskHandler struct {
	taskService   TaskServiceInterface
	memberService MemberServiceInterface
}

func NewTaskHandler(taskService TaskServiceInterface, memberService MemberServiceInterface) *TaskHandler {
	return &TaskHandler{
		taskService:   taskService,
		memberService: memberService,
	}
}

func taskResponse(t *models.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          t.ID,
		WorkspaceID: t.WorkspaceID,
		ProjectID:   t.ProjectID,
		AssigneeID:  t.AssigneeID,
		Name:        t.Name,
		Description: t.Description,
		Status:      string(t.Status),
		Position:    t.Position,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
	}
}

func populatedTaskResponse(t *models.PopulatedTask) dto.PopulatedTaskResponse {
	resp := dto.PopulatedTaskResponse{TaskResponse: taskResponse(&t.Task)}
	if t.Project != nil {
		p := projectResponse(t.Project)
		resp.Project = &p
	}
	if t.Assignee != nil {
		resp.Assignee = &dto.MemberResponse{
			ID:          t.Assignee.ID,
			WorkspaceID: t.Assignee.WorkspaceID,
			UserID:      t.Assignee.UserID,
			Role:        string(t.Assignee.Role),
			Name:        t.Assignee.Name,
			Email:       t.Assignee.Email,
			CreatedAt:   t.Assignee.CreatedAt,
		}
	}
	return resp
}

func (h *TaskHandler) List(c *drift.Context) {
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

	f := query.Filter{WorkspaceID: workspaceID}

	if v := c.QueryParam("projectId"); v != "" {
		projectID, err := uuid.Parse(v)
		if err != nil {
			c.BadRequest("invalid project id")
			return
		}
		f.ProjectID = &projectID
	}
	if v := c.QueryParam("assigneeId"); v != "" {
		assigneeID, err := uuid.Parse(v)
		if err != nil {
			c.BadRequest("invalid assignee id")
			return
		}
		f.AssigneeID = &assigneeID
	}
	if v := c.QueryParam("status"); v != "" {
		status := models.TaskStatus(v)
		if !status.IsValid() {
			c.BadRequest("invalid status")
			return
		}
		f.Status = &status
	}
	if v := c.QueryParam("dueDate"); v != "" {
		dueDate, err := time.Parse("2006-01-02", v)
		if err != nil {
			dueDate, err = time.Parse(time.RFC3339, v)
			if err != nil {
				c.BadRequest("invalid due date")
				return
			}
		}
		f.DueDate = &dueDate
	}
	if v := c.QueryParam("search"); v != "" {
		f.Search = &v
	}
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			c.BadRequest("invalid limit")
			return
		}
		f.Limit = limit
	}

	ctx := c.Request.Context()

	if _, ok := resolveMember(c, h.memberService, workspaceID, userID); !ok {
		return
	}

	tasks, err := h.taskService.List(ctx, f)
	if err != nil {
		c.InternalServerError("failed to list tasks")
		return
	}

	populated, err := h.taskService.Populate(ctx, tasks)
	if err != nil {
		c.InternalServerError("failed to list tasks")
		return
	}

	response := dto.TaskListResponse{
		Tasks: make([]dto.PopulatedTaskResponse, len(populated)),
		Total: len(populated),
	}
	for i := range populated {
		response.Tasks[i] = populatedTaskResponse(&populated[i])
	}

	_ = c.JSON(200, response)
}

func (h *TaskHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		c.BadRequest("invalid task id")
		return
	}

	ctx := c.Request.Context()

	task, err := h.taskService.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.NotFound("task not found")
			return
		}
		c.InternalServerError("failed to get task")
		return
	}

	if _, ok := resolveMember(c, h.memberService, task.WorkspaceID, userID); !ok {
		return
	}

	populated, err := h.taskService.Populate(ctx, []models.Task{*task})
	if err != nil || len(populated) != 1 {
		c.InternalServerError("failed to get task")
		return
	}

	_ = c.JSON(200, populatedTaskResponse(&populated[0]))
}

func (h *TaskHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.WorkspaceID == uuid.Nil {
		c.BadRequest("workspace_id is required")
		return
	}
	if req.ProjectID == uuid.Nil {
		c.BadRequest("project_id is required")
		return
	}
	if req.AssigneeID == uuid.Nil {
		c.BadRequest("assignee_id is required")
		return
	}
	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}
	status := models.TaskStatus(req.Status)
	if !status.IsValid() {
		c.BadRequest("invalid status")
		return
	}
	if req.DueDate.IsZero() {
		c.BadRequest("due_date is required")
		return
	}

	if _, ok := resolveMember(c, h.memberService, req.WorkspaceID, userID); !ok {
		return
	}

	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	task, err := h.taskService.Create(c.Request.Context(), req.WorkspaceID, req.ProjectID, req.AssigneeID, req.Name, status, req.DueDate, description)
	if err != nil {
		c.InternalServerError("failed to create task")
		return
	}

	_ = c.JSON(201, taskResponse(task))
}

func (h *TaskHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		c.BadRequest("invalid task id")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	upd := services.TaskUpdate{
		Name:        req.Name,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	}
	if req.Name != nil && *req.Name == "" {
		c.BadRequest("name cannot be empty")
		return
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		if !status.IsValid() {
			c.BadRequest("invalid status")
			return
		}
		upd.Status = &status
	}

	ctx := c.Request.Context()

	task, err := h.taskService.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.NotFound("task not found")
			return
		}
		c.InternalServerError("failed to get task")
		return
	}

	if _, ok := resolveMember(c, h.memberService, task.WorkspaceID, userID); !ok {
		return
	}

	updated, err := h.taskService.Update(ctx, taskID, upd)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.NotFound("task not found")
			return
		}
		c.InternalServerError("failed to update task")
		return
	}

	_ = c.JSON(200, taskResponse(updated))
}

func (h *TaskHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		c.BadRequest("invalid task id")
		return
	}

	ctx := c.Request.Context()

	task, err := h.taskService.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.NotFound("task not found")
			return
		}
		c.InternalServerError("failed to get task")
		return
	}

	if _, ok := resolveMember(c, h.memberService, task.WorkspaceID, userID); !ok {
		return
	}

	if err := h.taskService.Delete(ctx, taskID); err != nil {
		c.InternalServerError("failed to delete task")
		return
	}

	_ = c.JSON(200, dto.DeletedTaskResponse{ID: taskID})
}

func (h *TaskHandler) BulkUpdate(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.BulkUpdateTasksRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if len(req.Tasks) == 0 {
		c.BadRequest("tasks is required")
		return
	}

	updates := make([]services.ReorderUpdate, len(req.Tasks))
	for i, item := range req.Tasks {
		if item.ID == uuid.Nil {
			c.BadRequest("task id is required")
			return
		}
		status := models.TaskStatus(item.Status)
		if !status.IsValid() {
			c.BadRequest("invalid status")
			return
		}
		if item.Position < models.MinPosition || item.Position > models.MaxPosition {
			c.BadRequest("position out of range")
			return
		}
		updates[i] = services.ReorderUpdate{
			ID:       item.ID,
			Status:   status,
			Position: item.Position,
		}
	}

	tasks, err := h.taskService.Reorder(c.Request.Context(), userID, updates)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			c.NotFound("task not found")
		case errors.Is(err, services.ErrCrossWorkspace):
			c.BadRequest("tasks must belong to a single workspace")
		case errors.Is(err, services.ErrNotMember):
			c.Unauthorized("unauthorized")
		default:
			c.InternalServerError("failed to update tasks")
		}
		return
	}

	response := make([]dto.TaskResponse, len(tasks))
	for i := range tasks {
		response[i] = taskResponse(&tasks[i])
	}

	_ = c.JSON(200, response)
}
