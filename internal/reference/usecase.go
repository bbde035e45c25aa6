package reference

import (
	"context"

	"github.com/atelierops/backoffice/internal/model"
)

type UseCase interface {
	Sizes(ctx context.Context) ([]model.Size, error)
	Colors(ctx context.Context) ([]model.Color, error)
	// Invalidate drops the cached lists; the change feed calls it.
	Invalidate(ctx context.Context)
}
