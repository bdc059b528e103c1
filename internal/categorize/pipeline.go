//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_completer.go -package=mocks daylog/internal/categorize Completer

// Package categorize turns note text into one stored entry per category.
package categorize

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"daylog/internal/apperr"
	"daylog/internal/contextutil"
	"daylog/internal/journal"
	"daylog/internal/storage"
)

// DefaultTimeout bounds the completion call when no timeout is configured.
const DefaultTimeout = 60 * time.Second

// Completer sends a prompt to a text-generation service and returns the
// reply text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Result summarizes one categorization run.
type Result struct {
	// Parsed is the number of pairs in the reply, recognized or not.
	Parsed int `json:"parsed"`
	// Upserted is the number of entries written.
	Upserted int `json:"upserted"`
	// Skipped is the number of pairs with an unknown category.
	Skipped int `json:"skipped"`
}

// Pipeline categorizes note text and upserts one entry per (today, category).
type Pipeline struct {
	completer Completer
	store     *storage.Store
	clock     journal.Clock
	timeout   time.Duration
}

// NewPipeline creates a Pipeline. A non-positive timeout uses DefaultTimeout.
func NewPipeline(completer Completer, store *storage.Store, clock journal.Clock, timeout time.Duration) *Pipeline {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Pipeline{
		completer: completer,
		store:     store,
		clock:     clock,
		timeout:   timeout,
	}
}

// Categorize sends noteText to the service and stores the result.
//
// Unknown category codes are skipped. All surviving pairs are written in a
// single transaction: either every entry is saved or none is.
func (p *Pipeline) Categorize(ctx context.Context, noteText string) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(noteText) == "" {
		return Result{}, apperr.ErrNoNoteLoaded
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	raw, err := p.completer.Complete(callCtx, BuildPrompt(noteText))
	cancel()
	if err != nil {
		return Result{}, err
	}

	pairs, err := ParseResponse(raw)
	if err != nil {
		logger.WarnContext(ctx, "unparseable categorization response", "error", err)
		return Result{}, err
	}

	result := Result{Parsed: len(pairs)}
	entries := make([]storage.EntryRecord, 0, len(pairs))
	for _, pair := range pairs {
		category, err := journal.ParseCategory(pair.Category)
		if err != nil {
			result.Skipped++
			logger.DebugContext(ctx, "skipping unknown category", slog.String("category", pair.Category))
			continue
		}
		entries = append(entries, storage.EntryRecord{Category: category, Content: pair.Content})
	}

	if err := p.save(ctx, entries); err != nil {
		return Result{}, &apperr.PersistenceError{Op: "save entries", Attempted: len(entries), Err: err}
	}
	result.Upserted = len(entries)

	logger.InfoContext(ctx, "note categorized",
		slog.Int("parsed", result.Parsed),
		slog.Int("upserted", result.Upserted),
		slog.Int("skipped", result.Skipped),
	)
	return result, nil
}

func (p *Pipeline) save(ctx context.Context, entries []storage.EntryRecord) error {
	if len(entries) == 0 {
		return nil
	}

	now := p.clock.Now()
	today := journal.DayOf(now)

	tx, err := p.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i := range entries {
		entry := &entries[i]
		existing, err := tx.Entries.GetByDayAndCategory(ctx, today, entry.Category)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			entry.Day = today
			entry.NoteDay = today
			entry.CreatedAt = now
		case err != nil:
			return err
		default:
			content := entry.Content
			*entry = *existing
			entry.Content = content
		}
		entry.UpdatedAt = now

		if err := tx.Entries.Upsert(ctx, entry); err != nil {
			return err
		}
	}
	return tx.Commit()
}
