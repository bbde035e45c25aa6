package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/atelierops/backoffice/internal/exception"
	"github.com/atelierops/backoffice/internal/exception/dto"
	"github.com/atelierops/backoffice/internal/model"
	"github.com/atelierops/backoffice/internal/session"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type exceptionUseCase struct {
	repo   exception.Repository
	logger *zap.Logger
}

func NewExceptionUseCase(repo exception.Repository, log *zap.Logger) exception.UseCase {
	return &exceptionUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *exceptionUseCase) Create(ctx context.Context, input *dto.CreateExceptionInput) (*model.OrderException, error) {
	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return nil, exception.ErrInvalidPriority
	}

	now := time.Now()
	e := &model.OrderException{
		BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		OrderID:       input.OrderID,
		ExceptionType: input.ExceptionType,
		Priority:      priority,
		Status:        model.ExceptionOpen,
		Description:   input.Description,
		CreatedBy:     session.Actor(ctx),
	}

	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	uc.logger.Info("exception opened",
		zap.String("exception_id", e.ID),
		zap.String("order_id", e.OrderID),
		zap.String("type", e.ExceptionType),
	)
	return e, nil
}

func (uc *exceptionUseCase) Get(ctx context.Context, id string) (*model.OrderException, error) {
	e, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, exception.ErrNotFound
	}
	return e, nil
}

func (uc *exceptionUseCase) List(ctx context.Context, filters *dto.ExceptionFilters) ([]model.OrderException, int, error) {
	if filters.Status != "" && !filters.Status.Valid() {
		return nil, 0, exception.ErrInvalidStatus
	}
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 || filters.PageSize > 100 {
		filters.PageSize = 20
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *exceptionUseCase) ListByOrder(ctx context.Context, orderID string) ([]model.OrderException, error) {
	return uc.repo.FindByOrder(ctx, orderID)
}

func (uc *exceptionUseCase) UpdateStatus(ctx context.Context, id string, status model.ExceptionStatus) (*model.OrderException, error) {
	if !status.Valid() {
		return nil, exception.ErrInvalidStatus
	}
	// Resolution carries mandatory notes and goes through Resolve.
	if status == model.ExceptionResolved {
		return nil, exception.ErrNotesRequired
	}

	e, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !exception.CanTransition(e.Status, status) {
		return nil, exception.ErrInvalidTransition
	}

	e.Status = status
	e.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	uc.logger.Info("exception status updated",
		zap.String("exception_id", e.ID),
		zap.String("status", string(status)),
	)
	return e, nil
}

func (uc *exceptionUseCase) Resolve(ctx context.Context, id string, notes string) (*model.OrderException, error) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil, exception.ErrNotesRequired
	}

	e, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !exception.CanTransition(e.Status, model.ExceptionResolved) {
		return nil, exception.ErrInvalidTransition
	}

	e.Status = model.ExceptionResolved
	e.ResolutionNotes = &notes
	e.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	uc.logger.Info("exception resolved", zap.String("exception_id", e.ID))
	return e, nil
}
