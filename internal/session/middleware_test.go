package session

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareBuildsSessionFromHeaders(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())

	var got Session
	app.Get("/", func(c *fiber.Ctx) error {
		got = FromContext(c.UserContext())
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderSessionID, "sess-1")
	req.Header.Set(HeaderUserID, "user-1")
	req.Header.Set(HeaderUserRole, "staff")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "sess-1", got.SessionID)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "staff", got.Role)
	assert.Equal(t, "sess-1", resp.Header.Get(HeaderSessionID))
}

func TestMiddlewareGeneratesSessionID(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())

	var got Session
	app.Get("/", func(c *fiber.Ctx) error {
		got = FromContext(c.UserContext())
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.NotEmpty(t, got.SessionID)
	assert.Equal(t, got.SessionID, resp.Header.Get(HeaderSessionID))
	assert.Empty(t, got.UserID)
}

func TestActor(t *testing.T) {
	assert.Nil(t, Actor(context.Background()))

	ctx := WithSession(context.Background(), Session{UserID: "user-1"})
	actor := Actor(ctx)
	require.NotNil(t, actor)
	assert.Equal(t, "user-1", *actor)
}
