package ratelimit_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/fakenewsdetect/backend/internal/middleware/ratelimit"
)

func TestAllowPerKey(t *testing.T) {
	rl := ratelimit.New(ratelimit.Config{MaxRequestsPerMinute: 1, Burst: 2})

	require.True(t, rl.Allow("10.0.0.1"))
	require.True(t, rl.Allow("10.0.0.1"))
	require.False(t, rl.Allow("10.0.0.1"))

	require.True(t, rl.Allow("10.0.0.2"))
}

func TestMiddlewareRejectsWith429(t *testing.T) {
	rl := ratelimit.New(ratelimit.Config{MaxRequestsPerMinute: 1, Burst: 1})

	app := fiber.New()
	app.Use(rl.Middleware())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	require.Equal(t, "60", resp.Header.Get("Retry-After"))
}
