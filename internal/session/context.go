package session

import "context"

// Session is the explicit per-request identity object. It is built once at
// the transport edge and threaded through context rather than read from
// ambient storage.
type Session struct {
	SessionID string
	UserID    string
	Role      string
}

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session, or a zero session when none was attached
// (background workers, tests).
func FromContext(ctx context.Context) Session {
	if s, ok := ctx.Value(ctxKey{}).(Session); ok {
		return s
	}
	return Session{}
}

// Actor returns the user ID as a nullable reference for audit columns.
func Actor(ctx context.Context) *string {
	s := FromContext(ctx)
	if s.UserID == "" {
		return nil
	}
	id := s.UserID
	return &id
}
