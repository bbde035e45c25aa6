package listener

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/atelierops/backoffice/internal/inventory"
	invdto "github.com/atelierops/backoffice/internal/inventory/dto"
	"github.com/atelierops/backoffice/internal/inventory/stock"
	"github.com/atelierops/backoffice/pkg/broker"
	"go.uber.org/zap"
)

// OrderListener consumes order events and applies their stock deductions
// through the audited adjustment path.
type OrderListener struct {
	consumer *broker.KafkaConsumer
	invUC    inventory.UseCase
	logger   *zap.Logger
}

func NewOrderListener(consumer *broker.KafkaConsumer, invUC inventory.UseCase, log *zap.Logger) *OrderListener {
	return &OrderListener{
		consumer: consumer,
		invUC:    invUC,
		logger:   log,
	}
}

func (l *OrderListener) Start(ctx context.Context) {
	l.logger.Info("starting order kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping order kafka listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type OrderCreatedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID    string             `json:"id"`
	Items []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

func (l *OrderListener) processMessage(ctx context.Context, value []byte) {
	var event OrderCreatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != "OrderCreated" {
		return
	}

	l.logger.Info("processing OrderCreated event", zap.String("order_id", event.Payload.ID))

	for _, item := range event.Payload.Items {
		if item.Quantity <= 0 {
			continue
		}

		input := &invdto.AdjustStockInput{
			VariantID:     item.VariantID,
			Operation:     stock.OpSubtract,
			Operand:       strconv.Itoa(item.Quantity),
			Reason:        "order sale",
			ReferenceType: "sale",
			ReferenceID:   event.Payload.ID,
		}

		if _, err := l.invUC.AdjustStock(ctx, input); err != nil {
			l.logger.Error("failed to deduct stock for order item",
				zap.String("order_id", event.Payload.ID),
				zap.String("variant_id", item.VariantID),
				zap.Error(err),
			)
		}
	}
}
