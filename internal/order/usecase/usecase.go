package usecase

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/atelierops/backoffice/internal/model"
	"github.com/atelierops/backoffice/internal/order"
	"github.com/atelierops/backoffice/internal/order/dto"
	"github.com/atelierops/backoffice/internal/session"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type orderUseCase struct {
	repo   order.Repository
	logger *zap.Logger
}

func NewOrderUseCase(repo order.Repository, log *zap.Logger) order.UseCase {
	return &orderUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, order.ErrNotFound
	}

	items, err := uc.repo.FindItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	if filters.Status != "" && !filters.Status.Valid() {
		return nil, 0, order.ErrInvalidStatus
	}
	if filters.Stage != "" && !filters.Stage.Valid() {
		return nil, 0, order.ErrInvalidStage
	}
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 || filters.PageSize > 100 {
		filters.PageSize = 20
	}
	return uc.repo.FindAll(ctx, filters)
}

// Queue is derived fresh on every call; it never persists its ordering.
func (uc *orderUseCase) Queue(ctx context.Context) ([]model.Order, error) {
	actionable, err := uc.repo.FindActionable(ctx)
	if err != nil {
		return nil, err
	}
	return order.Rank(actionable), nil
}

func (uc *orderUseCase) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, order.ErrInvalidStatus
	}

	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, err
	}

	// Leaving the actionable statuses clears any explicit pin.
	if !status.Actionable() {
		if err := uc.repo.DeleteQueueEntry(ctx, id); err != nil {
			uc.logger.Warn("failed to clear queue entry", zap.String("order_id", id), zap.Error(err))
		}
	}

	uc.logger.Info("order status updated", zap.String("order_id", id), zap.String("status", string(status)))
	return uc.GetOrder(ctx, id)
}

func (uc *orderUseCase) UpdateStage(ctx context.Context, id string, stage model.FulfillmentStage) (*model.Order, error) {
	if !stage.Valid() {
		return nil, order.ErrInvalidStage
	}

	if err := uc.repo.UpdateStage(ctx, id, stage); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, err
	}

	uc.logger.Info("order stage updated", zap.String("order_id", id), zap.String("stage", string(stage)))
	return uc.GetOrder(ctx, id)
}

func (uc *orderUseCase) SetPriority(ctx context.Context, id string, tier *model.PriorityTier) (*model.Order, error) {
	if tier != nil && !tier.Valid() {
		return nil, order.ErrInvalidPriority
	}

	if err := uc.repo.UpdatePriority(ctx, id, tier); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, err
	}
	return uc.GetOrder(ctx, id)
}

func (uc *orderUseCase) PinQueuePosition(ctx context.Context, orderID string, position int) error {
	if position < 1 {
		return order.ErrInvalidPosition
	}

	o, err := uc.repo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o == nil {
		return order.ErrNotFound
	}

	now := time.Now()
	entry := &model.OrderQueueEntry{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		Position:  position,
		PinnedBy:  session.Actor(ctx),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return uc.repo.UpsertQueueEntry(ctx, entry)
}

func (uc *orderUseCase) UnpinQueuePosition(ctx context.Context, orderID string) error {
	return uc.repo.DeleteQueueEntry(ctx, orderID)
}

func (uc *orderUseCase) ListPinned(ctx context.Context) ([]model.OrderQueueEntry, error) {
	return uc.repo.ListQueueEntries(ctx)
}
