package analytics

import (
	"context"
	"time"

	"github.com/atelierops/backoffice/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder buffers analytics events and writes them in batches, on size or
// on an interval tick, whichever comes first. It is a thin insert-only
// logger, not a stream processor.
type Recorder struct {
	repo      Repository
	events    chan model.AnalyticsEvent
	batchSize int
	interval  time.Duration
	logger    *zap.Logger
	done      chan struct{}
}

func NewRecorder(repo Repository, batchSize int, interval time.Duration, log *zap.Logger) *Recorder {
	if batchSize < 1 {
		batchSize = 50
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Recorder{
		repo:      repo,
		events:    make(chan model.AnalyticsEvent, batchSize*4),
		batchSize: batchSize,
		interval:  interval,
		logger:    log,
		done:      make(chan struct{}),
	}
}

// Record enqueues an event. It never blocks the request path; when the
// buffer is full the event is dropped with a warning.
func (r *Recorder) Record(sessionID, eventType, page string, payload []byte) {
	e := model.AnalyticsEvent{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		EventType: eventType,
		Page:      page,
		Payload:   payload,
		CreatedAt: time.Now(),
	}

	select {
	case r.events <- e:
	default:
		r.logger.Warn("analytics buffer full, dropping event",
			zap.String("session_id", sessionID),
			zap.String("event_type", eventType),
		)
	}
}

// Run drains the buffer until ctx is cancelled, then flushes what remains.
func (r *Recorder) Run(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	batch := make([]model.AnalyticsEvent, 0, r.batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		// Fresh context: the run context is already cancelled on shutdown.
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.repo.InsertBatch(flushCtx, batch); err != nil {
			r.logger.Error("failed to flush analytics batch",
				zap.Int("batch_size", len(batch)),
				zap.Error(err),
			)
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case e := <-r.events:
					batch = append(batch, e)
					if len(batch) >= r.batchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		case e := <-r.events:
			batch = append(batch, e)
			if len(batch) >= r.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

// Wait blocks until Run has flushed and returned.
func (r *Recorder) Wait() {
	<-r.done
}

func (r *Recorder) ListBySession(ctx context.Context, sessionID string) ([]model.AnalyticsEvent, error) {
	return r.repo.FindBySession(ctx, sessionID)
}
