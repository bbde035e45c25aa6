package order

import (
	"context"

	"github.com/atelierops/backoffice/internal/model"
	"github.com/atelierops/backoffice/internal/order/dto"
)

type UseCase interface {
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)
	// Queue returns actionable orders ranked by priority tier, FIFO within
	// a tier. Derived on every call.
	Queue(ctx context.Context) ([]model.Order, error)

	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	UpdateStage(ctx context.Context, id string, stage model.FulfillmentStage) (*model.Order, error)
	SetPriority(ctx context.Context, id string, tier *model.PriorityTier) (*model.Order, error)

	PinQueuePosition(ctx context.Context, orderID string, position int) error
	UnpinQueuePosition(ctx context.Context, orderID string) error
	ListPinned(ctx context.Context) ([]model.OrderQueueEntry, error)
}
