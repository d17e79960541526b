package payload_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/fakenewsdetect/backend/internal/middleware/payload"
	"github.com/fakenewsdetect/backend/internal/validation"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Post("/text", payload.Validate(validation.TextSchema, "text"), func(c *fiber.Ctx) error {
		v := payload.Values(c)
		return c.SendString(v.String("title") + "|" + v.String("content"))
	})
	return app
}

func post(t *testing.T, app *fiber.App, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("POST", "/text", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestValidatePassesValues(t *testing.T) {
	status, body := post(t, newApp(), `{"title":"Hello","content":"World"}`)
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "Hello|World", body)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		body    string
		message string
	}{
		{``, `"title" is required`},
		{`{"title":"Hello"}`, `"content" is required`},
		{`{"title":`, `Invalid JSON payload`},
		{`"just a string"`, `"value" must be of type object`},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			status, body := post(t, newApp(), tt.body)
			require.Equal(t, fiber.StatusBadRequest, status)

			var out map[string]any
			require.NoError(t, json.Unmarshal([]byte(body), &out))
			require.Equal(t, "Validation Error", out["error"])
			require.Equal(t, tt.message, out["message"])
			require.NotContains(t, out, "success")
		})
	}
}
