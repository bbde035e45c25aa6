package feed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/atelierops/backoffice/pkg/broker"
	"go.uber.org/zap"
)

// Event is a table-change notification. Consumers refetch; the event does
// not carry row data.
type Event struct {
	Table string `json:"table"`
	Type  string `json:"type"` // insert | update | delete
}

// Handler reacts to a change on a table, typically by invalidating a cache.
type Handler func(ctx context.Context)

// Listener consumes table-change events and dispatches registered handlers,
// debounced per table so refetch storms collapse into one refresh.
type Listener struct {
	consumer *broker.KafkaConsumer
	debounce *Debouncer
	handlers map[string][]Handler
	logger   *zap.Logger
}

func NewListener(consumer *broker.KafkaConsumer, delay time.Duration, log *zap.Logger) *Listener {
	return &Listener{
		consumer: consumer,
		debounce: NewDebouncer(delay),
		handlers: map[string][]Handler{},
		logger:   log,
	}
}

// On registers a handler for a table. Not safe to call after Start.
func (l *Listener) On(table string, h Handler) {
	l.handlers[table] = append(l.handlers[table], h)
}

func (l *Listener) Start(ctx context.Context) {
	l.logger.Info("starting change-feed listener")
	defer l.debounce.Stop()
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping change-feed listener")
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

func (l *Listener) processMessage(ctx context.Context, value []byte) {
	var event Event
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("failed to unmarshal change event", zap.Error(err))
		return
	}

	handlers, ok := l.handlers[event.Table]
	if !ok {
		return
	}

	l.debounce.Trigger(event.Table, func() {
		l.logger.Debug("change-feed refresh", zap.String("table", event.Table))
		for _, h := range handlers {
			h(ctx)
		}
	})
}
