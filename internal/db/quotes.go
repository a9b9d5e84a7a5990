package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/haitham/binaa-planner/internal/types"
)

// SaveQuote inserts a generated quote document
func (db *DB) SaveQuote(ctx context.Context, quote *types.Quote) (*types.Quote, error) {
	if quote.Title == "" {
		return nil, fmt.Errorf("quote title is required")
	}

	termsJSON, err := json.Marshal(quote.Terms)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quote terms: %w", err)
	}

	var saved types.Quote
	var savedTerms []byte
	err = db.pool.QueryRow(ctx,
		`INSERT INTO quotes (project_id, title, body, total_label, valid_until, terms)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, project_id, title, body, total_label, valid_until, terms, created_at`,
		quote.ProjectID, quote.Title, quote.Body, quote.TotalLabel, quote.ValidUntil, termsJSON,
	).Scan(&saved.ID, &saved.ProjectID, &saved.Title, &saved.Body,
		&saved.TotalLabel, &saved.ValidUntil, &savedTerms, &saved.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	if err := json.Unmarshal(savedTerms, &saved.Terms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quote terms: %w", err)
	}
	return &saved, nil
}

// GetQuote retrieves a quote by ID, or nil when it does not exist
func (db *DB) GetQuote(ctx context.Context, id uuid.UUID) (*types.Quote, error) {
	var quote types.Quote
	var termsJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, project_id, title, body, total_label, valid_until, terms, created_at
		 FROM quotes WHERE id = $1`,
		id,
	).Scan(&quote.ID, &quote.ProjectID, &quote.Title, &quote.Body,
		&quote.TotalLabel, &quote.ValidUntil, &termsJSON, &quote.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	if err := json.Unmarshal(termsJSON, &quote.Terms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quote terms: %w", err)
	}
	return &quote, nil
}

// ListQuotes retrieves all quotes for a project, newest first
func (db *DB) ListQuotes(ctx context.Context, projectID uuid.UUID) ([]types.Quote, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, project_id, title, body, total_label, valid_until, terms, created_at
		 FROM quotes WHERE project_id = $1 ORDER BY created_at DESC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	var quotes []types.Quote
	for rows.Next() {
		var quote types.Quote
		var termsJSON []byte
		if err := rows.Scan(&quote.ID, &quote.ProjectID, &quote.Title, &quote.Body,
			&quote.TotalLabel, &quote.ValidUntil, &termsJSON, &quote.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		if err := json.Unmarshal(termsJSON, &quote.Terms); err != nil {
			return nil, fmt.Errorf("failed to unmarshal quote terms: %w", err)
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}
