package communication

import "errors"

var (
	ErrNotFound         = errors.New("communication log not found")
	ErrInvalidType      = errors.New("invalid communication type")
	ErrInvalidDirection = errors.New("invalid communication direction")
	ErrContentRequired  = errors.New("content is required")
)
