package model

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
	OrderRefunded   OrderStatus = "refunded"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderConfirmed, OrderShipped,
		OrderDelivered, OrderCancelled, OrderRefunded:
		return true
	}
	return false
}

// Actionable reports whether the order belongs in the work queue.
func (s OrderStatus) Actionable() bool {
	return s == OrderPending || s == OrderProcessing
}

// FulfillmentStage is the richer pipeline enum used by order management,
// tracked independently of the customer-facing status.
type FulfillmentStage string

const (
	StagePendingPayment   FulfillmentStage = "pending_payment"
	StagePaymentConfirmed FulfillmentStage = "payment_confirmed"
	StageProcessing       FulfillmentStage = "processing"
	StageInProduction     FulfillmentStage = "in_production"
	StageQualityCheck     FulfillmentStage = "quality_check"
	StageCompleted        FulfillmentStage = "completed"
	StageDelivered        FulfillmentStage = "delivered"
	StageCancelled        FulfillmentStage = "cancelled"
)

func (s FulfillmentStage) Valid() bool {
	switch s {
	case StagePendingPayment, StagePaymentConfirmed, StageProcessing, StageInProduction,
		StageQualityCheck, StageCompleted, StageDelivered, StageCancelled:
		return true
	}
	return false
}

// PriorityTier is an operator-assigned label used for queue ranking only.
// Any tier may be set at any time; there are no transition rules.
type PriorityTier string

const (
	PriorityLow     PriorityTier = "low"
	PriorityMedium  PriorityTier = "medium"
	PriorityHigh    PriorityTier = "high"
	PriorityUrgent  PriorityTier = "urgent"
	PriorityWedding PriorityTier = "wedding"
	PriorityRush    PriorityTier = "rush"
)

func (p PriorityTier) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent, PriorityWedding, PriorityRush:
		return true
	}
	return false
}

type Order struct {
	BaseModel
	OrderNumber      string           `db:"order_number" json:"order_number"`
	CustomerID       string           `db:"customer_id" json:"customer_id"`
	Status           OrderStatus      `db:"status" json:"status"`
	FulfillmentStage FulfillmentStage `db:"fulfillment_stage" json:"fulfillment_stage"`
	PriorityLevel    *PriorityTier    `db:"priority_level" json:"priority_level"`
	Subtotal         float64          `db:"subtotal" json:"subtotal"`
	TaxTotal         float64          `db:"tax_total" json:"tax_total"`
	GrandTotal       float64          `db:"grand_total" json:"grand_total"`
	Items            []OrderItem      `db:"-" json:"items,omitempty"` // Joined
}

type OrderItem struct {
	ID        string  `db:"id" json:"id"`
	OrderID   string  `db:"order_id" json:"order_id"`
	VariantID string  `db:"variant_id" json:"variant_id"`
	Quantity  int     `db:"quantity" json:"quantity"`
	UnitPrice float64 `db:"unit_price" json:"unit_price"`
}

// OrderQueueEntry is the explicit-position queue scheme. It is independent of
// the derived priority ranking, which never writes here.
type OrderQueueEntry struct {
	ID        string    `db:"id" json:"id"`
	OrderID   string    `db:"order_id" json:"order_id"`
	Position  int       `db:"position" json:"position"`
	PinnedBy  *string   `db:"pinned_by" json:"pinned_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
