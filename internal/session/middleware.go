package session

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	HeaderSessionID = "X-Session-Id"
	HeaderUserID    = "X-User-Id"
	HeaderUserRole  = "X-User-Role"
)

// Middleware builds the request session from headers and attaches it to the
// request context. A missing session id gets a fresh one, echoed back in the
// response so the client can keep it.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Get(HeaderSessionID)
		if sessionID == "" {
			sessionID = uuid.New().String()
		}
		c.Set(HeaderSessionID, sessionID)

		s := Session{
			SessionID: sessionID,
			UserID:    c.Get(HeaderUserID),
			Role:      c.Get(HeaderUserRole),
		}
		c.SetUserContext(WithSession(c.UserContext(), s))
		return c.Next()
	}
}
