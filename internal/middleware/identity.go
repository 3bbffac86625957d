package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// RoleIDKey is the locals key under which Identity stores the caller's role id.
const RoleIDKey = "role_id"

// RoleIDHeader carries the caller's resolved role id. Resolving the caller to
// a role is an authentication concern external to this service; the gate only
// consumes the result.
const RoleIDHeader = "X-Role-Id"

// Identity extracts the caller's role id from the request and stores it in
// the request context. A missing or malformed header is not itself an error;
// permission-guarded routes deny later.
func Identity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if raw := c.Get(RoleIDHeader); raw != "" {
			if roleID, err := strconv.ParseUint(raw, 10, 64); err == nil {
				c.Locals(RoleIDKey, roleID)
			}
		}
		return c.Next()
	}
}
