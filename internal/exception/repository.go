package exception

import (
	"context"

	"github.com/atelierops/backoffice/internal/exception/dto"
	"github.com/atelierops/backoffice/internal/model"
)

type Repository interface {
	Create(ctx context.Context, e *model.OrderException) error
	FindByID(ctx context.Context, id string) (*model.OrderException, error)
	FindAll(ctx context.Context, filters *dto.ExceptionFilters) ([]model.OrderException, int, error)
	FindByOrder(ctx context.Context, orderID string) ([]model.OrderException, error)
	Update(ctx context.Context, e *model.OrderException) error
}
