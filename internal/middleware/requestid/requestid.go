package requestid

import (
	"github.com/gofiber/fiber/v2"
	fiberrequestid "github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const localsKey = "requestid"

// New tags every request with an X-Request-ID, reusing the client's value
// when present.
func New() fiber.Handler {
	return fiberrequestid.New(fiberrequestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: localsKey,
	})
}

// Get returns the id assigned to the current request.
func Get(c *fiber.Ctx) string {
	id, _ := c.Locals(localsKey).(string)
	return id
}
