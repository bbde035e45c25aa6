package model

type ExceptionStatus string

const (
	ExceptionOpen       ExceptionStatus = "open"
	ExceptionInProgress ExceptionStatus = "in_progress"
	ExceptionEscalated  ExceptionStatus = "escalated"
	ExceptionResolved   ExceptionStatus = "resolved"
)

func (s ExceptionStatus) Valid() bool {
	switch s {
	case ExceptionOpen, ExceptionInProgress, ExceptionEscalated, ExceptionResolved:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s ExceptionStatus) Terminal() bool {
	return s == ExceptionResolved
}

type OrderException struct {
	BaseModel
	OrderID         string          `db:"order_id" json:"order_id"`
	ExceptionType   string          `db:"exception_type" json:"exception_type"`
	Priority        PriorityTier    `db:"priority" json:"priority"`
	Status          ExceptionStatus `db:"status" json:"status"`
	Description     string          `db:"description" json:"description"`
	ResolutionNotes *string         `db:"resolution_notes" json:"resolution_notes"`
	CreatedBy       *string         `db:"created_by" json:"created_by"`
}
