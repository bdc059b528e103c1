package apperr

import (
	"errors"
	"fmt"
)

var messages = []struct {
	err error
	msg string
}{
	{ErrProviderUnavailable, "Health data is not available."},
	{ErrAuthorizationDenied, "Health data authorization was denied. Please enable access in Settings."},
	{ErrSyncInProgress, "A health data sync is already running."},
	{ErrNoteSourceUnconfigured, "No note vault connected."},
	{ErrNoteNotFound, "No daily note found for today."},
	{ErrNoNoteLoaded, "No daily note loaded. Read today's note first."},
	{ErrCredentialMissing, "No API key configured."},
	{ErrCategorizationAuth, "Invalid API key."},
	{ErrCategorizationRateLimited, "Rate limited. Please try again later."},
	{ErrCategorizationResponseInvalid, "Could not extract categories from the response."},
}

// Message renders err as the human-readable text shown to the user.
// Unknown errors fall back to err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("Unexpected status: %d", statusErr.StatusCode)
	}
	var persistErr *PersistenceError
	if errors.As(err, &persistErr) {
		if persistErr.Attempted > 0 {
			return fmt.Sprintf("Failed to save %d parsed entries: %v", persistErr.Attempted, persistErr.Err)
		}
		return fmt.Sprintf("Data error: %v", persistErr.Err)
	}
	if errors.Is(err, ErrNoteReadFailed) {
		return fmt.Sprintf("Note error: %v", err)
	}

	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return err.Error()
}
