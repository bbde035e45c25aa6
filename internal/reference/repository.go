package reference

import (
	"context"

	"github.com/atelierops/backoffice/internal/model"
)

type Repository interface {
	ListSizes(ctx context.Context) ([]model.Size, error)
	ListColors(ctx context.Context) ([]model.Color, error)
}
