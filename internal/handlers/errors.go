package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"daylog/internal/apperr"
	"daylog/internal/contextutil"
	"daylog/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps a service error to an HTTP status code.
func statusFor(err error) int {
	var validationErr *service.ValidationError
	var statusErr *apperr.StatusError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNoteNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrNoteSourceUnconfigured),
		errors.Is(err, apperr.ErrNoNoteLoaded),
		errors.Is(err, apperr.ErrCredentialMissing):
		return http.StatusPreconditionFailed
	case errors.Is(err, apperr.ErrSyncInProgress):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrAuthorizationDenied):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrCategorizationRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, apperr.ErrCategorizationAuth),
		errors.Is(err, apperr.ErrCategorizationResponseInvalid),
		errors.Is(err, apperr.ErrNoteReadFailed),
		errors.As(err, &statusErr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// handleServiceError logs err and writes its user-facing message with the
// mapped status code.
func handleServiceError(w http.ResponseWriter, ctx context.Context, err error) {
	logger := contextutil.LoggerFromContext(ctx)
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "service error", "error", err, "status", status)
	} else {
		logger.WarnContext(ctx, "request failed", "error", err, "status", status)
	}

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, status, fmt.Sprintf("Validation error: %s", validationErr.Error()))
		return
	}
	writeError(w, status, apperr.Message(err))
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, ctx context.Context, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", slog.String("error", err.Error()))
	}
}
