package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fakenewsdetect/backend/internal/middleware/requestid"
	"github.com/fakenewsdetect/backend/internal/store"
	"github.com/fakenewsdetect/backend/pkg/logger"
)

func now() string {
	return time.Now().UTC().Format(store.ISOLayout)
}

func respond(c *fiber.Ctx, data any, message string) error {
	body := fiber.Map{
		"success":   true,
		"timestamp": now(),
	}
	if data != nil {
		body["data"] = data
	}
	if message != "" {
		body["message"] = message
	}
	return c.JSON(body)
}

func fail(c *fiber.Ctx, status int, kind, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   kind,
		"message": message,
	})
}

// internalError logs err with request context and answers 500 without
// exposing it.
func internalError(c *fiber.Ctx, err error, kind, message string) error {
	logger.Error(message,
		zap.Error(err),
		zap.String("request_id", requestid.Get(c)),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.String("ip", c.IP()),
	)
	return fail(c, fiber.StatusInternalServerError, kind, message)
}

// pageParams reads page and limit, falling back to the defaults for missing,
// non-numeric or non-positive values.
func pageParams(c *fiber.Ctx, defaultLimit int) (int, int) {
	page := positiveQuery(c, "page", 1)
	limit := positiveQuery(c, "limit", defaultLimit)
	return page, limit
}

func positiveQuery(c *fiber.Ctx, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
