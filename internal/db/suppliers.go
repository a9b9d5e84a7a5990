package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/haitham/binaa-planner/internal/types"
)

const supplierColumns = `id, name, category, city, phone, email, website_url, rating, created_at`

func scanSupplier(row pgx.Row) (*types.Supplier, error) {
	var s types.Supplier
	err := row.Scan(&s.ID, &s.Name, &s.Category, &s.City, &s.Phone, &s.Email,
		&s.WebsiteURL, &s.Rating, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSupplier inserts a new supplier and returns the stored record
func (db *DB) CreateSupplier(ctx context.Context, supplier *types.Supplier) (*types.Supplier, error) {
	if supplier.Name == "" {
		return nil, fmt.Errorf("supplier name is required")
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO suppliers (name, category, city, phone, email, website_url, rating)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+supplierColumns,
		supplier.Name, supplier.Category, supplier.City, supplier.Phone,
		supplier.Email, supplier.WebsiteURL, supplier.Rating,
	)

	created, err := scanSupplier(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return created, nil
}

// GetSupplier retrieves a supplier by ID, or nil when it does not exist
func (db *DB) GetSupplier(ctx context.Context, id uuid.UUID) (*types.Supplier, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id)

	supplier, err := scanSupplier(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	return supplier, nil
}

// SupplierFilters holds optional filters for listing suppliers
type SupplierFilters struct {
	Category string
	City     string
}

// ListSuppliers retrieves suppliers with optional filters, best rated first
func (db *DB) ListSuppliers(ctx context.Context, filters SupplierFilters) ([]types.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argNum)
		args = append(args, filters.Category)
		argNum++
	}
	if filters.City != "" {
		query += fmt.Sprintf(" AND city ILIKE $%d", argNum)
		args = append(args, filters.City)
	}

	query += " ORDER BY rating DESC, created_at DESC"

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []types.Supplier
	for rows.Next() {
		supplier, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		suppliers = append(suppliers, *supplier)
	}
	return suppliers, nil
}
