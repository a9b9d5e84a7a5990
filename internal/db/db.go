// Package db provides PostgreSQL access for projects, suppliers, orders,
// quotes, and pipeline run artifacts.
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping verifies the pool is still reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Artifact step names for plan generation runs.
const (
	StepClassification    = "classification"
	StepBlueprintAnalysis = "blueprint_analysis"
	StepCostEstimate      = "cost_estimate"
	StepPlanAssembled     = "plan_assembled"
	StepRiskReport        = "risk_report"
	StepQuote             = "quote"
)

// Run status values.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Run represents one plan-generation run for a project
type Run struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Status      string     `json:"status"`
	Error       *string    `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CreateRun creates a new plan-generation run record and returns its ID
func (db *DB) CreateRun(ctx context.Context, projectID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO plan_runs (project_id, status)
		 VALUES ($1, 'running')
		 RETURNING id`,
		projectID,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun marks a run as completed or failed. The error message is
// recorded only for failed runs.
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string, runErr error) error {
	var errMsg *string
	if runErr != nil {
		msg := runErr.Error()
		errMsg = &msg
	}
	_, err := db.pool.Exec(ctx,
		`UPDATE plan_runs SET status = $1, error = $2, completed_at = NOW() WHERE id = $3`,
		status, errMsg, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// SaveArtifact stores a JSON artifact for a run
func (db *DB) SaveArtifact(ctx context.Context, runID uuid.UUID, step string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO artifacts (run_id, step, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (run_id, step) DO UPDATE SET content = $3, created_at = NOW()`,
		runID, step, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", step, err)
	}
	return nil
}

// GetArtifact retrieves a JSON artifact by run ID and step
func (db *DB) GetArtifact(ctx context.Context, runID uuid.UUID, step string) ([]byte, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM artifacts WHERE run_id = $1 AND step = $2`,
		runID, step,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get artifact %s: %w", step, err)
	}
	return content, nil
}

// GetRun retrieves a run by ID
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	var run Run
	err := db.pool.QueryRow(ctx,
		`SELECT id, project_id, status, error, created_at, completed_at
		 FROM plan_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.ProjectID, &run.Status, &run.Error, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// ListRuns retrieves recent runs for a project
func (db *DB) ListRuns(ctx context.Context, projectID uuid.UUID, limit int) ([]Run, error) {
	if limit == 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, project_id, status, error, created_at, completed_at
		 FROM plan_runs WHERE project_id = $1 ORDER BY created_at DESC LIMIT $2`,
		projectID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.ProjectID, &run.Status, &run.Error, &run.CreatedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// GetLatestPlan returns the newest assembled plan artifact for a project,
// or nil when no completed run has produced one yet.
func (db *DB) GetLatestPlan(ctx context.Context, projectID uuid.UUID) ([]byte, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT a.content
		 FROM artifacts a
		 JOIN plan_runs r ON r.id = a.run_id
		 WHERE r.project_id = $1 AND a.step = $2 AND r.status = $3
		 ORDER BY a.created_at DESC
		 LIMIT 1`,
		projectID, StepPlanAssembled, RunStatusCompleted,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest plan: %w", err)
	}
	return content, nil
}
