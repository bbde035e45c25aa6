package order

import (
	"context"

	"github.com/atelierops/backoffice/internal/model"
	"github.com/atelierops/backoffice/internal/order/dto"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)
	// FindActionable returns every order in the work-queue statuses
	// (pending, processing), unranked.
	FindActionable(ctx context.Context) ([]model.Order, error)
	FindItems(ctx context.Context, orderID string) ([]model.OrderItem, error)

	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
	UpdateStage(ctx context.Context, id string, stage model.FulfillmentStage) error
	UpdatePriority(ctx context.Context, id string, tier *model.PriorityTier) error

	// Explicit-position queue scheme, independent of the derived ranking.
	UpsertQueueEntry(ctx context.Context, e *model.OrderQueueEntry) error
	DeleteQueueEntry(ctx context.Context, orderID string) error
	ListQueueEntries(ctx context.Context) ([]model.OrderQueueEntry, error)
}
