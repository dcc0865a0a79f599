package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/veljkom/taskboard-api/internal/database"
	"github.com/veljkom/taskboard-api/internal/models"
)

var ErrProjectNotFound = errors.New("project not found")

type ProjectService struct {
	db *database.DB
}

func NewProjectService(db *database.DB) *ProjectService {
	return &ProjectService{db: db}
}

func (s *ProjectService) Create(ctx context.Context, workspaceID uuid.UUID, name string, imageURL *string) (*models.Project, error) {
	var project models.Project
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO projects (workspace_id, name, image_url)
		VALUES ($1, $2, $3)
		RETURNING id, workspace_id, name, image_url, created_at, updated_at
	`, workspaceID, name, imageURL).Scan(
		&project.ID, &project.WorkspaceID, &project.Name,
		&project.ImageURL, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &project, nil
}

func (s *ProjectService) GetByID(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, workspace_id, name, image_url, created_at, updated_at
		FROM projects WHERE id = $1
	`, projectID).Scan(
		&project.ID, &project.WorkspaceID, &project.Name,
		&project.ImageURL, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.Project, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, workspace_id, name, image_url, created_at, updated_at
		FROM projects WHERE workspace_id = $1
		ORDER BY created_at DESC
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.WorkspaceID, &p.Name, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *ProjectService) Update(ctx context.Context, projectID uuid.UUID, name string, imageURL *string) (*models.Project, error) {
	var project models.Project
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE projects SET name = $1, image_url = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, workspace_id, name, image_url, created_at, updated_at
	`, name, imageURL, projectID).Scan(
		&project.ID, &project.WorkspaceID, &project.Name,
		&project.ImageURL, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Delete(ctx context.Context, projectID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, projectID)
	return err
}
