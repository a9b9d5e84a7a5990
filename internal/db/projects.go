package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/haitham/binaa-planner/internal/types"
)

const projectColumns = `id, owner_id, name, description, location, project_type, quality_tier, status, created_at, updated_at`

func scanProject(row pgx.Row) (*types.Project, error) {
	var p types.Project
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.Location,
		&p.ProjectType, &p.QualityTier, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProject inserts a new project and returns the stored record
func (db *DB) CreateProject(ctx context.Context, project *types.Project) (*types.Project, error) {
	if project.Name == "" {
		return nil, fmt.Errorf("project name is required")
	}
	if project.Status == "" {
		project.Status = types.ProjectStatusPlanning
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO projects (owner_id, name, description, location, project_type, quality_tier, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+projectColumns,
		project.OwnerID, project.Name, project.Description, project.Location,
		project.ProjectType, project.QualityTier, project.Status,
	)

	created, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return created, nil
}

// GetProject retrieves a project by ID, or nil when it does not exist
func (db *DB) GetProject(ctx context.Context, id uuid.UUID) (*types.Project, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)

	project, err := scanProject(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// ListProjects retrieves all projects for an owner, newest first
func (db *DB) ListProjects(ctx context.Context, ownerID uuid.UUID) ([]types.Project, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []types.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}
	return projects, nil
}

// UpdateProject updates mutable project fields and returns the new record
func (db *DB) UpdateProject(ctx context.Context, project *types.Project) (*types.Project, error) {
	row := db.pool.QueryRow(ctx,
		`UPDATE projects
		 SET name = $1, description = $2, location = $3, project_type = $4,
		     quality_tier = $5, status = $6, updated_at = NOW()
		 WHERE id = $7
		 RETURNING `+projectColumns,
		project.Name, project.Description, project.Location, project.ProjectType,
		project.QualityTier, project.Status, project.ID,
	)

	updated, err := scanProject(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return updated, nil
}

// DeleteProject deletes a project and its runs and artifacts via cascade
func (db *DB) DeleteProject(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("project not found: %s", id)
	}
	return nil
}
