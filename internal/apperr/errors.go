// Package apperr defines the error kinds shared by the sync, ingestion and
// categorization pipelines, and their user-facing messages.
package apperr

import (
	"errors"
	"fmt"

	"daylog/internal/journal"
)

var (
	// ErrProviderUnavailable is reported when no metrics provider is reachable.
	// Window sync treats it as a silent no-op.
	ErrProviderUnavailable = errors.New("metrics provider is not available")
	// ErrAuthorizationDenied aborts a window sync before any day is fetched.
	ErrAuthorizationDenied = errors.New("metrics authorization denied")
	// ErrSyncInProgress is returned when a window sync is already running.
	ErrSyncInProgress = errors.New("metrics sync already in progress")

	ErrNoteSourceUnconfigured = errors.New("no note vault configured")
	ErrNoteNotFound           = errors.New("daily note not found")
	ErrNoteReadFailed         = errors.New("failed to read daily note")
	// ErrNoNoteLoaded means categorization was requested without note text.
	ErrNoNoteLoaded = errors.New("no daily note loaded")

	ErrCredentialMissing             = errors.New("no API key configured")
	ErrCategorizationAuth            = errors.New("categorization service rejected the API key")
	ErrCategorizationRateLimited     = errors.New("categorization service rate limited")
	ErrCategorizationResponseInvalid = errors.New("invalid categorization response")
)

// ProviderFetchError records a failed metrics fetch for one day.
type ProviderFetchError struct {
	Day journal.DateKey
	Err error
}

func (e *ProviderFetchError) Error() string {
	return fmt.Sprintf("fetch metrics for %s: %v", e.Day, e.Err)
}

func (e *ProviderFetchError) Unwrap() error { return e.Err }

// StatusError is a non-success HTTP status from an external service that
// has no dedicated kind.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// PersistenceError wraps a store failure. Attempted is the number of
// records the failed transaction tried to write.
type PersistenceError struct {
	Op        string
	Attempted int
	Err       error
}

func (e *PersistenceError) Error() string {
	if e.Attempted > 0 {
		return fmt.Sprintf("%s (%d records): %v", e.Op, e.Attempted, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}
