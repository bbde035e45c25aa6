package model

import "time"

type AnalyticsEvent struct {
	ID        string    `db:"id" json:"id"`
	SessionID string    `db:"session_id" json:"session_id"`
	EventType string    `db:"event_type" json:"event_type"`
	Page      string    `db:"page" json:"page"`
	Payload   []byte    `db:"payload" json:"payload"` // Raw JSON, opaque to the service
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

const (
	EventPageView = "page_view"
	EventAction   = "action"
)
