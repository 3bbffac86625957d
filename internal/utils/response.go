package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse sends a standard error response
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// ValidationErrorResponse sends a 400 with the field-level error list and,
// when present, the invalid id list from a permission replacement.
func ValidationErrorResponse(c *fiber.Ctx, messages []string, invalidIDs []uint64, errorType string) error {
	body := fiber.Map{
		"status":    fiber.StatusBadRequest,
		"message":   "Validation failed",
		"ok":        false,
		"errors":    messages,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	}
	if len(messages) == 1 {
		body["message"] = messages[0]
	}
	if len(invalidIDs) > 0 {
		body["invalidIds"] = invalidIDs
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":    fiber.StatusNotFound,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}

// AckResponse sends a success acknowledgement for mutations that return no body
func AckResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   message,
		"ok":        true,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status     int      `json:"status"`
	Message    string   `json:"message"`
	Ok         bool     `json:"ok"`
	Timestamp  string   `json:"timestamp"`
	URL        string   `json:"url"`
	Type       string   `json:"type,omitempty"`
	Errors     []string `json:"errors,omitempty"`
	InvalidIDs []uint64 `json:"invalidIds,omitempty"`
}

// AckResponseStruct defines the schema for acknowledgement responses
type AckResponseStruct struct {
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
}
