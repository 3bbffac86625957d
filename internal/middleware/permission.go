// permission.go
//
// Freedom wall note-board service, a Go replacement for the original
// Express/Sequelize backend.

package middleware

import (
	"errors"
	"slices"

	"github.com/freewall/freewall/internal/services"
	"github.com/freewall/freewall/internal/types"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequirePermission gates a route on membership of a permission title in the
// caller's role's effective permission set. It runs read-only and blocks the
// guarded handler until it resolves.
func RequirePermission(db *gorm.DB, permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleID, ok := c.Locals(RoleIDKey).(uint64)
		if !ok || roleID == 0 {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Unauthorized - No role assigned",
				Type:    "authorization." + permission,
			}
		}

		titles, err := services.EffectivePermissions(db, roleID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return &types.CustomError{
					Code:    fiber.StatusUnauthorized,
					Message: "Unauthorized - Invalid role",
					Type:    "authorization." + permission,
				}
			}
			return err
		}

		if !slices.Contains(titles, permission) {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "Forbidden - Insufficient permissions",
				Type:    "authorization." + permission,
			}
		}

		return c.Next()
	}
}
