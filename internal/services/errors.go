package services

import (
	"errors"
	"strings"
)

// ErrNotFound reports that the referenced entity is absent or already
// soft deleted.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed or semantically invalid input. Messages
// holds field-level error messages; InvalidIDs is set by the permission
// replacement path to list the permission ids that did not resolve.
type ValidationError struct {
	Messages   []string `json:"errors"`
	InvalidIDs []uint64 `json:"invalidIds,omitempty"`
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// NewValidationError builds a ValidationError from field messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}
