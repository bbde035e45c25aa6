package analytics

import (
	"context"

	"github.com/atelierops/backoffice/internal/model"
)

type Repository interface {
	InsertBatch(ctx context.Context, events []model.AnalyticsEvent) error
	FindBySession(ctx context.Context, sessionID string) ([]model.AnalyticsEvent, error)
}
