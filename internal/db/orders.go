package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/haitham/binaa-planner/internal/types"
)

// Purchase order status values.
const (
	OrderStatusDraft     = "draft"
	OrderStatusSent      = "sent"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCancelled = "cancelled"
)

// CreatePurchaseOrder inserts an order with its items stored as JSONB
func (db *DB) CreatePurchaseOrder(ctx context.Context, order *types.PurchaseOrder) (*types.PurchaseOrder, error) {
	if len(order.Items) == 0 {
		return nil, fmt.Errorf("purchase order has no items")
	}
	if order.Status == "" {
		order.Status = OrderStatusDraft
	}

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order items: %w", err)
	}

	var created types.PurchaseOrder
	var createdItems []byte
	err = db.pool.QueryRow(ctx,
		`INSERT INTO purchase_orders (project_id, supplier_id, items, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, project_id, supplier_id, items, status, created_at`,
		order.ProjectID, order.SupplierID, itemsJSON, order.Status,
	).Scan(&created.ID, &created.ProjectID, &created.SupplierID, &createdItems,
		&created.Status, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create purchase order: %w", err)
	}

	if err := json.Unmarshal(createdItems, &created.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}
	return &created, nil
}

// GetPurchaseOrder retrieves an order by ID, or nil when it does not exist
func (db *DB) GetPurchaseOrder(ctx context.Context, id uuid.UUID) (*types.PurchaseOrder, error) {
	var order types.PurchaseOrder
	var itemsJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, project_id, supplier_id, items, status, created_at
		 FROM purchase_orders WHERE id = $1`,
		id,
	).Scan(&order.ID, &order.ProjectID, &order.SupplierID, &itemsJSON,
		&order.Status, &order.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get purchase order: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}
	return &order, nil
}

// ListPurchaseOrders retrieves all orders for a project, newest first
func (db *DB) ListPurchaseOrders(ctx context.Context, projectID uuid.UUID) ([]types.PurchaseOrder, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, project_id, supplier_id, items, status, created_at
		 FROM purchase_orders WHERE project_id = $1 ORDER BY created_at DESC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase orders: %w", err)
	}
	defer rows.Close()

	var orders []types.PurchaseOrder
	for rows.Next() {
		var order types.PurchaseOrder
		var itemsJSON []byte
		if err := rows.Scan(&order.ID, &order.ProjectID, &order.SupplierID,
			&itemsJSON, &order.Status, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan purchase order: %w", err)
		}
		if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// UpdatePurchaseOrderStatus moves an order to a new status
func (db *DB) UpdatePurchaseOrderStatus(ctx context.Context, id uuid.UUID, status string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE purchase_orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update purchase order: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("purchase order not found: %s", id)
	}
	return nil
}
