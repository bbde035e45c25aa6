package feed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestListenerDispatchesByTable(t *testing.T) {
	l := NewListener(nil, 0, zap.NewNop())

	var orders, products int
	l.On("orders", func(context.Context) { orders++ })
	l.On("inventory_products", func(context.Context) { products++ })

	ctx := context.Background()
	l.processMessage(ctx, []byte(`{"table":"orders","type":"update"}`))
	l.processMessage(ctx, []byte(`{"table":"orders","type":"insert"}`))
	l.processMessage(ctx, []byte(`{"table":"customers","type":"update"}`))
	l.processMessage(ctx, []byte(`not json`))

	assert.Equal(t, 2, orders)
	assert.Equal(t, 0, products, "handlers only fire for their own table")
}
