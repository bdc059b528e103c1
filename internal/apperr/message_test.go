package apperr

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"daylog/internal/journal"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "note not found", err: fmt.Errorf("%w: 2024-01-15.md", ErrNoteNotFound), want: "No daily note found for today."},
		{name: "no note loaded", err: ErrNoNoteLoaded, want: "No daily note loaded. Read today's note first."},
		{name: "invalid key", err: fmt.Errorf("categorize: %w", ErrCategorizationAuth), want: "Invalid API key."},
		{name: "rate limited", err: ErrCategorizationRateLimited, want: "Rate limited. Please try again later."},
		{name: "status", err: fmt.Errorf("call: %w", &StatusError{StatusCode: 500, Body: "boom"}), want: "Unexpected status: 500"},
		{name: "persistence with count", err: &PersistenceError{Op: "commit entries", Attempted: 3, Err: errors.New("disk full")}, want: "Failed to save 3 parsed entries: disk full"},
		{name: "persistence without count", err: &PersistenceError{Op: "begin", Err: errors.New("locked")}, want: "Data error: locked"},
		{name: "unknown error", err: errors.New("something odd"), want: "something odd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMessage_NoteReadFailedCarriesCause(t *testing.T) {
	err := fmt.Errorf("%w: %w", ErrNoteReadFailed, errors.New("permission denied"))
	got := Message(err)
	if !strings.Contains(got, "permission denied") {
		t.Errorf("Message() = %q, want cause included", got)
	}
}

func TestProviderFetchError(t *testing.T) {
	cause := errors.New("timeout")
	err := &ProviderFetchError{Day: journal.NewDateKey(2024, 1, 15), Err: cause}

	if !errors.Is(err, cause) {
		t.Error("ProviderFetchError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "2024-01-15") {
		t.Errorf("Error() = %q, want day included", err.Error())
	}
}
