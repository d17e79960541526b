// Package payload validates JSON request bodies before the route handler
// runs and hands the normalized values over through fiber locals.
package payload

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fakenewsdetect/backend/internal/metrics"
	"github.com/fakenewsdetect/backend/internal/validation"
	"github.com/fakenewsdetect/backend/pkg/logger"
)

const localsKey = "payload.values"

// Validate decodes the body, checks it against schema and answers 400 with
// the first violation. route labels the failure metric.
func Validate(schema *validation.Schema, route string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := validation.DecodeObject(c.Body())
		if err == nil {
			var values validation.Values
			values, err = schema.Validate(body)
			if err == nil {
				c.Locals(localsKey, values)
				return c.Next()
			}
		}

		metrics.ValidationFailures.WithLabelValues(route).Inc()
		logger.Debug("Request failed validation",
			zap.String("route", route),
			zap.String("ip", c.IP()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation Error",
			"message": err.Error(),
		})
	}
}

// Values returns what Validate stored; empty when the middleware did not run.
func Values(c *fiber.Ctx) validation.Values {
	v, _ := c.Locals(localsKey).(validation.Values)
	return v
}
