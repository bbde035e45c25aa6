package repository

import (
	"context"

	"github.com/atelierops/backoffice/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) InsertBatch(ctx context.Context, events []model.AnalyticsEvent) error {
	if len(events) == 0 {
		return nil
	}

	query := `
        INSERT INTO processing_analytics (id, session_id, event_type, page, payload, created_at)
        VALUES (:id, :session_id, :event_type, :page, :payload, :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, events)
	return err
}

func (r *PGRepository) FindBySession(ctx context.Context, sessionID string) ([]model.AnalyticsEvent, error) {
	var events []model.AnalyticsEvent
	query := `SELECT * FROM processing_analytics WHERE session_id = $1 ORDER BY created_at`
	err := r.DB.SelectContext(ctx, &events, query, sessionID)
	return events, err
}
