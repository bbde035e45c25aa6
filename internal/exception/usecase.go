package exception

import (
	"context"

	"github.com/atelierops/backoffice/internal/exception/dto"
	"github.com/atelierops/backoffice/internal/model"
)

type UseCase interface {
	Create(ctx context.Context, input *dto.CreateExceptionInput) (*model.OrderException, error)
	Get(ctx context.Context, id string) (*model.OrderException, error)
	List(ctx context.Context, filters *dto.ExceptionFilters) ([]model.OrderException, int, error)
	ListByOrder(ctx context.Context, orderID string) ([]model.OrderException, error)

	// UpdateStatus moves an exception along the lifecycle. Resolving through
	// this path is rejected; Resolve carries the mandatory notes.
	UpdateStatus(ctx context.Context, id string, status model.ExceptionStatus) (*model.OrderException, error)
	Resolve(ctx context.Context, id string, notes string) (*model.OrderException, error)
}
