package feed

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var calls int64
	for i := 0; i < 10; i++ {
		d.Trigger("orders", func() { atomic.AddInt64(&calls, 1) })
	}

	assert.Equal(t, int64(0), atomic.LoadInt64(&calls), "nothing fires before the delay elapses")

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&calls) == 1
	}, time.Second, 5*time.Millisecond, "a burst collapses into exactly one call")

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestDebouncerKeysAreIndependent(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	var orders, exceptions int64
	d.Trigger("orders", func() { atomic.AddInt64(&orders, 1) })
	d.Trigger("order_exceptions", func() { atomic.AddInt64(&exceptions, 1) })

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&orders) == 1 && atomic.LoadInt64(&exceptions) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestDebouncerZeroDelayFiresSynchronously(t *testing.T) {
	d := NewDebouncer(0)

	var calls int
	d.Trigger("orders", func() { calls++ })
	d.Trigger("orders", func() { calls++ })
	assert.Equal(t, 2, calls)
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var calls int64
	d.Trigger("orders", func() { atomic.AddInt64(&calls, 1) })
	d.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(0), atomic.LoadInt64(&calls))
}
