package security_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/fakenewsdetect/backend/internal/middleware/security"
)

func TestHeadersMiddleware(t *testing.T) {
	tests := []struct {
		name string
		dev  bool
		hsts bool
	}{
		{"production", false, true},
		{"development", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(security.HeadersMiddleware(security.HeadersConfig{
				AllowedOrigins: []string{"http://localhost:3000"},
				IsDevelopment:  tt.dev,
			}))
			app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)

			require.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
			require.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
			require.Contains(t, resp.Header.Get("Content-Security-Policy"), "connect-src 'self' http://localhost:3000")
			require.Equal(t, tt.hsts, resp.Header.Get("Strict-Transport-Security") != "")
		})
	}
}
