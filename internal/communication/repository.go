package communication

import (
	"context"

	"github.com/atelierops/backoffice/internal/model"
)

type Repository interface {
	Create(ctx context.Context, l *model.CommunicationLog) error
	// CreateCorrelated inserts the row and marks the outbound row with the
	// given id as answered, atomically.
	CreateCorrelated(ctx context.Context, l *model.CommunicationLog, outboundID string) error
	FindByID(ctx context.Context, id string) (*model.CommunicationLog, error)
	FindByOrder(ctx context.Context, orderID string) ([]model.CommunicationLog, error)
	// LatestUnansweredOutbound returns the most recent outbound row of the
	// given type for the order with response_received still false, or nil.
	LatestUnansweredOutbound(ctx context.Context, orderID string, t model.CommType) (*model.CommunicationLog, error)
	SetResponseReceived(ctx context.Context, id string, received bool) error
}
