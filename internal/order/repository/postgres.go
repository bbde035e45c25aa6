package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/atelierops/backoffice/internal/model"
	"github.com/atelierops/backoffice/internal/order/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	query := `SELECT * FROM orders WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &o, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	var orders []model.Order
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.Stage != "" {
		conditions = append(conditions, "fulfillment_stage = :stage")
		args["stage"] = f.Stage
	}
	if f.PriorityLevel != "" {
		conditions = append(conditions, "priority_level = :priority_level")
		args["priority_level"] = f.PriorityLevel
	}
	if f.CustomerID != "" {
		conditions = append(conditions, "customer_id = :customer_id")
		args["customer_id"] = f.CustomerID
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM orders" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM orders" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &orders, args)
	return orders, count, err
}

func (r *PGRepository) FindActionable(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	query := `SELECT * FROM orders WHERE status IN ('pending', 'processing') ORDER BY created_at`
	err := r.DB.SelectContext(ctx, &orders, query)
	return orders, err
}

func (r *PGRepository) FindItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	var items []model.OrderItem
	query := `SELECT * FROM order_items WHERE order_id = $1`
	err := r.DB.SelectContext(ctx, &items, query, orderID)
	return items, err
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	return r.exec(ctx, `UPDATE orders SET status = $1, updated_at = now() WHERE id = $2`, status, id)
}

func (r *PGRepository) UpdateStage(ctx context.Context, id string, stage model.FulfillmentStage) error {
	return r.exec(ctx, `UPDATE orders SET fulfillment_stage = $1, updated_at = now() WHERE id = $2`, stage, id)
}

func (r *PGRepository) UpdatePriority(ctx context.Context, id string, tier *model.PriorityTier) error {
	return r.exec(ctx, `UPDATE orders SET priority_level = $1, updated_at = now() WHERE id = $2`, tier, id)
}

func (r *PGRepository) exec(ctx context.Context, query string, args ...interface{}) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PGRepository) UpsertQueueEntry(ctx context.Context, e *model.OrderQueueEntry) error {
	query := `
        INSERT INTO order_priority_queue (id, order_id, position, pinned_by, created_at, updated_at)
        VALUES (:id, :order_id, :position, :pinned_by, :created_at, :updated_at)
        ON CONFLICT (order_id)
        DO UPDATE SET
            position = EXCLUDED.position,
            pinned_by = EXCLUDED.pinned_by,
            updated_at = EXCLUDED.updated_at
    `
	_, err := r.DB.NamedExecContext(ctx, query, e)
	return err
}

func (r *PGRepository) DeleteQueueEntry(ctx context.Context, orderID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM order_priority_queue WHERE order_id = $1`, orderID)
	return err
}

func (r *PGRepository) ListQueueEntries(ctx context.Context) ([]model.OrderQueueEntry, error) {
	var entries []model.OrderQueueEntry
	query := `SELECT * FROM order_priority_queue ORDER BY position`
	err := r.DB.SelectContext(ctx, &entries, query)
	return entries, err
}
