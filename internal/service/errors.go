package service

import (
	"fmt"

	"daylog/internal/apperr"
)

// ValidationError represents a validation error with a field name.
// It is shared with the orchestrators so transports need one check.
type ValidationError = apperr.ValidationError

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
