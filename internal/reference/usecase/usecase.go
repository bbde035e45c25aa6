package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/atelierops/backoffice/internal/model"
	"github.com/atelierops/backoffice/internal/reference"
	"github.com/atelierops/backoffice/pkg/cache"
	"go.uber.org/zap"
)

const (
	sizesCacheKey  = "reference:sizes"
	colorsCacheKey = "reference:colors"
	// Definition tables rarely change; the change feed invalidates early.
	referenceCacheTTL = 12 * time.Hour
)

type referenceUseCase struct {
	repo   reference.Repository
	cache  *cache.RedisClient
	logger *zap.Logger
}

func NewReferenceUseCase(repo reference.Repository, c *cache.RedisClient, log *zap.Logger) reference.UseCase {
	return &referenceUseCase{
		repo:   repo,
		cache:  c,
		logger: log,
	}
}

func (uc *referenceUseCase) Sizes(ctx context.Context) ([]model.Size, error) {
	if uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, sizesCacheKey).Result()
		if err == nil {
			var sizes []model.Size
			if err := json.Unmarshal([]byte(val), &sizes); err == nil {
				return sizes, nil
			}
		}
	}

	sizes, err := uc.repo.ListSizes(ctx)
	if err != nil {
		return nil, err
	}

	uc.store(ctx, sizesCacheKey, sizes)
	return sizes, nil
}

func (uc *referenceUseCase) Colors(ctx context.Context) ([]model.Color, error) {
	if uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, colorsCacheKey).Result()
		if err == nil {
			var colors []model.Color
			if err := json.Unmarshal([]byte(val), &colors); err == nil {
				return colors, nil
			}
		}
	}

	colors, err := uc.repo.ListColors(ctx)
	if err != nil {
		return nil, err
	}

	uc.store(ctx, colorsCacheKey, colors)
	return colors, nil
}

// Invalidate drops both cached lists. Wired to the change feed.
func (uc *referenceUseCase) Invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Client.Del(ctx, sizesCacheKey, colorsCacheKey).Err(); err != nil {
		uc.logger.Warn("failed to invalidate reference cache", zap.Error(err))
	}
}

func (uc *referenceUseCase) store(ctx context.Context, key string, v interface{}) {
	if uc.cache == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := uc.cache.Client.Set(ctx, key, payload, referenceCacheTTL).Err(); err != nil {
		uc.logger.Warn("failed to cache reference data", zap.Error(err))
	}
}
