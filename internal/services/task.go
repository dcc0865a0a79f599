package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/veljkom/taskboard-api/internal/database"
	"github.com/veljkom/taskboard-api/internal/models"
	"github.com/veljkom/taskboard-api/internal/query"
)

var (
	ErrTaskNotFound = errors.New("task not found")

	// ErrCrossWorkspace rejects a reorder batch whose tasks span more than
	// one workspace. The whole batch is refused; no row is written.
	ErrCrossWorkspace = errors.New("all tasks must belong to the same workspace")
)

const taskColumns = `id, workspace_id, project_id, assignee_id, name, description, status, position, due_date, created_at, updated_at`

type TaskService struct {
	db      *database.DB
	members *MemberService
}

func NewTaskService(db *database.DB, members *MemberService) *TaskService {
	return &TaskService{db: db, members: members}
}

// TaskUpdate carries a partial update; nil fields keep their current value.
type TaskUpdate struct {
	Name        *string
	Description *string
	Status      *models.TaskStatus
	ProjectID   *uuid.UUID
	AssigneeID  *uuid.UUID
	DueDate     *time.Time
}

// ReorderUpdate is one board move: the target bucket and the pre-computed
// position within it.
type ReorderUpdate struct {
	ID       uuid.UUID
	Status   models.TaskStatus
	Position int
}

func scanTask(row pgx.Row) (*models.Task, error) {
	var t models.Task
	err := row.Scan(
		&t.ID, &t.WorkspaceID, &t.ProjectID, &t.AssigneeID,
		&t.Name, &t.Description, &t.Status, &t.Position,
		&t.DueDate, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TaskService) GetByID(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	task, err := scanTask(s.db.Pool.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, taskID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// List runs the composed query for the filter. Callers resolve membership
// against the filter's workspace before getting here.
func (s *TaskService) List(ctx context.Context, f query.Filter) ([]models.Task, error) {
	sql, args := query.ForTasks(f).SelectSQL(taskColumns, "tasks")

	rows, err := s.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

// Populate joins a batch of tasks with their projects and assignees using
// one bulk lookup per referenced table, regardless of batch size. A dangling
// reference leaves the field nil; it never fails the batch.
func (s *TaskService) Populate(ctx context.Context, tasks []models.Task) ([]models.PopulatedTask, error) {
	populated := make([]models.PopulatedTask, 0, len(tasks))
	if len(tasks) == 0 {
		return populated, nil
	}

	projectIDs := make([]uuid.UUID, 0, len(tasks))
	assigneeIDs := make([]uuid.UUID, 0, len(tasks))
	seenProjects := make(map[uuid.UUID]bool)
	seenAssignees := make(map[uuid.UUID]bool)
	for _, task := range tasks {
		if !seenProjects[task.ProjectID] {
			seenProjects[task.ProjectID] = true
			projectIDs = append(projectIDs, task.ProjectID)
		}
		if !seenAssignees[task.AssigneeID] {
			seenAssignees[task.AssigneeID] = true
			assigneeIDs = append(assigneeIDs, task.AssigneeID)
		}
	}

	projects, err := s.projectsByID(ctx, projectIDs)
	if err != nil {
		return nil, err
	}

	assignees, err := s.assigneesByID(ctx, assigneeIDs)
	if err != nil {
		return nil, err
	}

	for _, task := range tasks {
		pt := models.PopulatedTask{Task: task}
		if project, ok := projects[task.ProjectID]; ok {
			pt.Project = &project
		}
		if assignee, ok := assignees[task.AssigneeID]; ok {
			pt.Assignee = &assignee
		}
		populated = append(populated, pt)
	}
	return populated, nil
}

func (s *TaskService) projectsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Project, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, workspace_id, name, image_url, created_at, updated_at
		FROM projects WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make(map[uuid.UUID]models.Project, len(ids))
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.WorkspaceID, &p.Name, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects[p.ID] = p
	}
	return projects, rows.Err()
}

func (s *TaskService) assigneesByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Assignee, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT m.id, m.workspace_id, m.user_id, m.role, m.created_at, u.name, u.email
		FROM members m
		JOIN users u ON m.user_id = u.id
		WHERE m.id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignees := make(map[uuid.UUID]models.Assignee, len(ids))
	for rows.Next() {
		var a models.Assignee
		if err := rows.Scan(&a.ID, &a.WorkspaceID, &a.UserID, &a.Role, &a.CreatedAt, &a.Name, &a.Email); err != nil {
			return nil, err
		}
		assignees[a.ID] = a
	}
	return assignees, rows.Err()
}

// Create inserts the task at the end of its (workspace, status) bucket:
// highest existing position plus the step, or the step itself when the
// bucket is empty. Concurrent creators can race for the same slot; the
// ordering key is not globally unique by design.
func (s *TaskService) Create(ctx context.Context, workspaceID, projectID, assigneeID uuid.UUID, name string, status models.TaskStatus, dueDate time.Time, description string) (*models.Task, error) {
	var maxPosition int
	err := s.db.Pool.QueryRow(ctx, `
		SELECT COALESCE(MAX(position), 0) FROM tasks
		WHERE workspace_id = $1 AND status = $2
	`, workspaceID, status).Scan(&maxPosition)
	if err != nil {
		return nil, fmt.Errorf("failed to find highest position: %w", err)
	}

	position := maxPosition + models.PositionStep

	task, err := scanTask(s.db.Pool.QueryRow(ctx, `
		INSERT INTO tasks (workspace_id, project_id, assignee_id, name, description, status, position, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+taskColumns,
		workspaceID, projectID, assigneeID, name, description, status, position, dueDate))
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, taskID uuid.UUID, upd TaskUpdate) (*models.Task, error) {
	task, err := scanTask(s.db.Pool.QueryRow(ctx, `
		UPDATE tasks SET
			name = COALESCE($1, name),
			description = COALESCE($2, description),
			status = COALESCE($3, status),
			project_id = COALESCE($4, project_id),
			assignee_id = COALESCE($5, assignee_id),
			due_date = COALESCE($6, due_date),
			updated_at = NOW()
		WHERE id = $7
		RETURNING `+taskColumns,
		upd.Name, upd.Description, upd.Status, upd.ProjectID, upd.AssigneeID, upd.DueDate, taskID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, taskID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
	return err
}

// Reorder applies a batch of board moves. The batch must stay inside one
// workspace and the caller must be a member of it; both are checked before
// anything is written. All rows are applied in a single transaction, so a
// failed or cancelled batch leaves nothing behind.
func (s *TaskService) Reorder(ctx context.Context, callerUserID uuid.UUID, updates []ReorderUpdate) ([]models.Task, error) {
	ids := make([]uuid.UUID, 0, len(updates))
	seen := make(map[uuid.UUID]bool)
	for _, u := range updates {
		if !seen[u.ID] {
			seen[u.ID] = true
			ids = append(ids, u.ID)
		}
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, workspace_id FROM tasks WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workspaces := make(map[uuid.UUID]bool)
	found := 0
	for rows.Next() {
		var id, workspaceID uuid.UUID
		if err := rows.Scan(&id, &workspaceID); err != nil {
			return nil, err
		}
		workspaces[workspaceID] = true
		found++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if found != len(ids) {
		return nil, ErrTaskNotFound
	}
	if len(workspaces) != 1 {
		return nil, ErrCrossWorkspace
	}

	var workspaceID uuid.UUID
	for id := range workspaces {
		workspaceID = id
	}

	if _, err := s.members.Resolve(ctx, workspaceID, callerUserID); err != nil {
		return nil, err
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	updated := make([]models.Task, 0, len(updates))
	for _, u := range updates {
		task, err := scanTask(tx.QueryRow(ctx, `
			UPDATE tasks SET status = $1, position = $2, updated_at = NOW()
			WHERE id = $3
			RETURNING `+taskColumns,
			u.Status, u.Position, u.ID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrTaskNotFound
			}
			return nil, fmt.Errorf("failed to update task %s: %w", u.ID, err)
		}
		updated = append(updated, *task)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return updated, nil
}
