package analytics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/atelierops/backoffice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	mu      sync.Mutex
	batches [][]model.AnalyticsEvent
}

func (f *fakeRepo) InsertBatch(_ context.Context, events []model.AnalyticsEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make([]model.AnalyticsEvent, len(events))
	copy(cp, events)
	f.batches = append(f.batches, cp)
	return nil
}

func (f *fakeRepo) FindBySession(_ context.Context, sessionID string) ([]model.AnalyticsEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.AnalyticsEvent{}
	for _, b := range f.batches {
		for _, e := range b {
			if e.SessionID == sessionID {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.batches {
		n += len(b)
	}
	return n
}

func (f *fakeRepo) batchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

func TestRecorderFlushesOnBatchSize(t *testing.T) {
	repo := &fakeRepo{}
	rec := NewRecorder(repo, 3, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go rec.Run(ctx)

	for i := 0; i < 6; i++ {
		rec.Record("sess-1", model.EventPageView, "/inventory", nil)
	}

	require.Eventually(t, func() bool { return repo.total() == 6 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, repo.batchCount(), "size-triggered flushes, no interval involved")
}

func TestRecorderFlushesOnInterval(t *testing.T) {
	repo := &fakeRepo{}
	rec := NewRecorder(repo, 100, 20*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go rec.Run(ctx)

	rec.Record("sess-1", model.EventAction, "/orders", []byte(`{"action":"pin"}`))
	rec.Record("sess-1", model.EventAction, "/orders", []byte(`{"action":"unpin"}`))

	require.Eventually(t, func() bool { return repo.total() == 2 }, time.Second, 5*time.Millisecond)
}

func TestRecorderFlushesOnShutdown(t *testing.T) {
	repo := &fakeRepo{}
	rec := NewRecorder(repo, 100, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go rec.Run(ctx)

	rec.Record("sess-1", model.EventPageView, "/exceptions", nil)
	rec.Record("sess-2", model.EventPageView, "/exceptions", nil)

	cancel()
	rec.Wait()

	assert.Equal(t, 2, repo.total(), "buffered events are flushed before Run returns")
}

func TestRecorderDropsWhenBufferFull(t *testing.T) {
	repo := &fakeRepo{}
	rec := NewRecorder(repo, 1, time.Hour, zap.NewNop())

	// No Run loop draining; channel capacity is batchSize*4.
	for i := 0; i < 50; i++ {
		rec.Record("sess-1", model.EventPageView, "/", nil)
	}

	assert.Len(t, rec.events, 4, "overflow is dropped, never blocks")
}

func TestListBySession(t *testing.T) {
	repo := &fakeRepo{}
	repo.batches = [][]model.AnalyticsEvent{{
		{ID: "1", SessionID: "sess-1"},
		{ID: "2", SessionID: "sess-2"},
	}}
	rec := NewRecorder(repo, 10, time.Hour, zap.NewNop())

	events, err := rec.ListBySession(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "1", events[0].ID)
}
