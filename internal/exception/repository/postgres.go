package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/atelierops/backoffice/internal/exception/dto"
	"github.com/atelierops/backoffice/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, e *model.OrderException) error {
	query := `
        INSERT INTO order_exceptions (
            id, order_id, exception_type, priority, status, description,
            resolution_notes, created_by, created_at, updated_at
        ) VALUES (
            :id, :order_id, :exception_type, :priority, :status, :description,
            :resolution_notes, :created_by, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, e)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.OrderException, error) {
	var e model.OrderException
	query := `SELECT * FROM order_exceptions WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &e, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ExceptionFilters) ([]model.OrderException, int, error) {
	var exceptions []model.OrderException
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.Priority != "" {
		conditions = append(conditions, "priority = :priority")
		args["priority"] = f.Priority
	}
	if f.OrderID != "" {
		conditions = append(conditions, "order_id = :order_id")
		args["order_id"] = f.OrderID
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM order_exceptions" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM order_exceptions" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &exceptions, args)
	return exceptions, count, err
}

func (r *PGRepository) FindByOrder(ctx context.Context, orderID string) ([]model.OrderException, error) {
	var exceptions []model.OrderException
	query := `SELECT * FROM order_exceptions WHERE order_id = $1 ORDER BY created_at DESC`
	err := r.DB.SelectContext(ctx, &exceptions, query, orderID)
	return exceptions, err
}

func (r *PGRepository) Update(ctx context.Context, e *model.OrderException) error {
	query := `
        UPDATE order_exceptions SET
            priority = :priority,
            status = :status,
            description = :description,
            resolution_notes = :resolution_notes,
            updated_at = :updated_at
        WHERE id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, e)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
