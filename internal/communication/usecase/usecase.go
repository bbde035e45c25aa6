package usecase

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/atelierops/backoffice/internal/communication"
	"github.com/atelierops/backoffice/internal/communication/dto"
	"github.com/atelierops/backoffice/internal/model"
	"github.com/atelierops/backoffice/internal/session"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type communicationUseCase struct {
	repo   communication.Repository
	logger *zap.Logger
}

func NewCommunicationUseCase(repo communication.Repository, log *zap.Logger) communication.UseCase {
	return &communicationUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *communicationUseCase) Record(ctx context.Context, input *dto.RecordInput) (*model.CommunicationLog, error) {
	if input.Direction != model.DirectionInbound && input.Direction != model.DirectionOutbound {
		return nil, communication.ErrInvalidDirection
	}
	if !input.Type.Valid() {
		return nil, communication.ErrInvalidType
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, communication.ErrContentRequired
	}

	now := time.Now()
	l := &model.CommunicationLog{
		BaseModel:  model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		OrderID:    input.OrderID,
		CustomerID: input.CustomerID,
		Direction:  input.Direction,
		Type:       input.Type,
		Subject:    input.Subject,
		Content:    input.Content,
		CreatedBy:  session.Actor(ctx),
	}

	if input.Direction == model.DirectionInbound {
		outbound, err := uc.repo.LatestUnansweredOutbound(ctx, input.OrderID, input.Type)
		if err != nil {
			return nil, err
		}
		if outbound != nil {
			if err := uc.repo.CreateCorrelated(ctx, l, outbound.ID); err != nil {
				return nil, err
			}
			uc.logger.Info("inbound communication correlated",
				zap.String("log_id", l.ID),
				zap.String("outbound_id", outbound.ID),
			)
			return l, nil
		}
	}

	if err := uc.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (uc *communicationUseCase) ListByOrder(ctx context.Context, orderID string) ([]model.CommunicationLog, error) {
	return uc.repo.FindByOrder(ctx, orderID)
}

func (uc *communicationUseCase) SetResponseReceived(ctx context.Context, id string, received bool) error {
	err := uc.repo.SetResponseReceived(ctx, id, received)
	if errors.Is(err, sql.ErrNoRows) {
		return communication.ErrNotFound
	}
	return err
}
