package communication

import (
	"context"

	"github.com/atelierops/backoffice/internal/communication/dto"
	"github.com/atelierops/backoffice/internal/model"
)

type UseCase interface {
	// Record appends a log row. An inbound row additionally marks the most
	// recent unanswered outbound row of the same type for the order as
	// answered.
	Record(ctx context.Context, input *dto.RecordInput) (*model.CommunicationLog, error)
	ListByOrder(ctx context.Context, orderID string) ([]model.CommunicationLog, error)
	// SetResponseReceived is the manual override for the automated
	// correlation.
	SetResponseReceived(ctx context.Context, id string, received bool) error
}
