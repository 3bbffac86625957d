// common.go
//
// Freedom wall note-board service, a Go replacement for the original
// Express/Sequelize backend.

package handlers

import (
	"errors"
	"strconv"

	"github.com/freewall/freewall/internal/services"
	"github.com/freewall/freewall/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// respondServiceError maps a service error kind onto the HTTP surface:
// ValidationError -> 400 with the field error list, ErrNotFound -> 404,
// anything else -> 500. Every failure path produces an explicit response.
func respondServiceError(c *fiber.Ctx, err error, notFoundMessage, errorType string) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return utils.ValidationErrorResponse(c, validationErr.Messages, validationErr.InvalidIDs, errorType)
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFoundResponse(c, notFoundMessage)
	default:
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, errorType)
	}
}

// parseIDParam parses the :id path parameter.
func parseIDParam(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}
