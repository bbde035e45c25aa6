package order

import "errors"

var (
	ErrNotFound        = errors.New("order not found")
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrInvalidStage    = errors.New("invalid fulfillment stage")
	ErrInvalidPriority = errors.New("invalid priority tier")
	ErrInvalidPosition = errors.New("queue position must be positive")
)
