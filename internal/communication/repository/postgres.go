package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/atelierops/backoffice/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const insertQuery = `
    INSERT INTO communication_logs (
        id, order_id, customer_id, direction, comm_type, subject, content,
        response_received, created_by, created_at, updated_at
    ) VALUES (
        :id, :order_id, :customer_id, :direction, :comm_type, :subject, :content,
        :response_received, :created_by, :created_at, :updated_at
    )
`

func (r *PGRepository) Create(ctx context.Context, l *model.CommunicationLog) error {
	_, err := r.DB.NamedExecContext(ctx, insertQuery, l)
	return err
}

func (r *PGRepository) CreateCorrelated(ctx context.Context, l *model.CommunicationLog, outboundID string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, insertQuery, l); err != nil {
		return err
	}

	markQuery := `UPDATE communication_logs SET response_received = true, updated_at = now() WHERE id = $1`
	if _, err := tx.ExecContext(ctx, markQuery, outboundID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.CommunicationLog, error) {
	var l model.CommunicationLog
	query := `SELECT * FROM communication_logs WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &l, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *PGRepository) FindByOrder(ctx context.Context, orderID string) ([]model.CommunicationLog, error) {
	var logs []model.CommunicationLog
	query := `SELECT * FROM communication_logs WHERE order_id = $1 ORDER BY created_at DESC`
	err := r.DB.SelectContext(ctx, &logs, query, orderID)
	return logs, err
}

func (r *PGRepository) LatestUnansweredOutbound(ctx context.Context, orderID string, t model.CommType) (*model.CommunicationLog, error) {
	var l model.CommunicationLog
	query := `
        SELECT * FROM communication_logs
        WHERE order_id = $1 AND comm_type = $2 AND direction = 'outbound' AND response_received = false
        ORDER BY created_at DESC
        LIMIT 1
    `
	err := r.DB.GetContext(ctx, &l, query, orderID, t)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *PGRepository) SetResponseReceived(ctx context.Context, id string, received bool) error {
	query := `UPDATE communication_logs SET response_received = $1, updated_at = now() WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, received, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
