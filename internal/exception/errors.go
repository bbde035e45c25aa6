package exception

import "errors"

var (
	ErrNotFound          = errors.New("exception not found")
	ErrInvalidStatus     = errors.New("invalid exception status")
	ErrInvalidPriority   = errors.New("invalid exception priority")
	ErrInvalidTransition = errors.New("exception status transition not allowed")
	ErrNotesRequired     = errors.New("resolution notes are required")
)
