//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_reader.go -package=mocks daylog/internal/notes Reader

// Package notes ingests daily notes from a vault into the store.
package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"daylog/internal/apperr"
	"daylog/internal/contextutil"
	"daylog/internal/journal"
	"daylog/internal/storage"
)

// DefaultTimeout bounds each vault read when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Reader is a source of daily notes.
type Reader interface {
	Configured() bool
	// ReadDailyNote returns found == false with a nil error when the vault
	// has no note for day.
	ReadDailyNote(ctx context.Context, day journal.DateKey) (text string, found bool, err error)
	Filename(day journal.DateKey) string
	// ListDays returns every day that has a note, oldest first.
	ListDays(ctx context.Context) ([]journal.DateKey, error)
}

// LoadedNote is the most recently ingested note for today.
type LoadedNote struct {
	Day      journal.DateKey `json:"day"`
	Filename string          `json:"filename"`
	Text     string          `json:"text"`
}

// BackfillReport summarizes a Backfill run.
type BackfillReport struct {
	Days     int `json:"days"`
	Ingested int `json:"ingested"`
	Failed   int `json:"failed"`
}

// Service stores one NoteRecord per day and remembers the last note read
// for today so it can be categorized.
type Service struct {
	reader  Reader
	store   *storage.Store
	clock   journal.Clock
	timeout time.Duration

	mu   sync.Mutex
	last *LoadedNote
}

// NewService creates a Service. A non-positive timeout uses DefaultTimeout.
func NewService(reader Reader, store *storage.Store, clock journal.Clock, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		reader:  reader,
		store:   store,
		clock:   clock,
		timeout: timeout,
	}
}

// IngestToday reads today's note, upserts it, and caches its text as the
// last read note.
func (s *Service) IngestToday(ctx context.Context) (*storage.NoteRecord, error) {
	rec, err := s.IngestDay(ctx, journal.DayOf(s.clock.Now()))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.last = &LoadedNote{Day: rec.Day, Filename: rec.Filename, Text: rec.RawText}
	s.mu.Unlock()
	return rec, nil
}

// IngestDay reads the note for day and upserts it. It does not change the
// last read note.
func (s *Service) IngestDay(ctx context.Context, day journal.DateKey) (*storage.NoteRecord, error) {
	if !s.reader.Configured() {
		return nil, apperr.ErrNoteSourceUnconfigured
	}

	readCtx, cancel := context.WithTimeout(ctx, s.timeout)
	text, found, err := s.reader.ReadDailyNote(readCtx, day)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrNoteReadFailed, err)
	}
	if !found {
		return nil, apperr.ErrNoteNotFound
	}

	rec := &storage.NoteRecord{
		Day:      day,
		RawText:  text,
		Filename: s.reader.Filename(day),
	}
	if err := s.save(ctx, rec); err != nil {
		return nil, &apperr.PersistenceError{Op: "save note for " + day.String(), Err: err}
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "daily note ingested",
		slog.String("day", day.String()),
		slog.Int("bytes", len(text)),
	)
	return rec, nil
}

func (s *Service) save(ctx context.Context, rec *storage.NoteRecord) error {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := s.clock.Now()
	existing, err := tx.Notes.GetByDay(ctx, rec.Day)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		rec.CreatedAt = now
	case err != nil:
		return err
	default:
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	}
	rec.UpdatedAt = now

	if err := tx.Notes.Upsert(ctx, rec); err != nil {
		return err
	}
	return tx.Commit()
}

// Backfill ingests every note in the vault whose day falls in [from, to].
// A zero bound is open. Failed days are logged and skipped.
func (s *Service) Backfill(ctx context.Context, from, to journal.DateKey) (BackfillReport, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if !s.reader.Configured() {
		return BackfillReport{}, apperr.ErrNoteSourceUnconfigured
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return BackfillReport{}, &apperr.ValidationError{Field: "from", Message: "must not be after to"}
	}

	listCtx, cancel := context.WithTimeout(ctx, s.timeout)
	days, err := s.reader.ListDays(listCtx)
	cancel()
	if err != nil {
		return BackfillReport{}, fmt.Errorf("%w: %w", apperr.ErrNoteReadFailed, err)
	}

	report := BackfillReport{}
	for _, day := range days {
		if (!from.IsZero() && day.Before(from)) || (!to.IsZero() && day.After(to)) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		report.Days++
		if _, err := s.IngestDay(ctx, day); err != nil {
			report.Failed++
			logger.ErrorContext(ctx, "failed to ingest note", "day", day.String(), "error", err)
			continue
		}
		report.Ingested++
	}
	return report, nil
}

// LastNote returns the last note read for today, or nil.
func (s *Service) LastNote() *LoadedNote {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil
	}
	note := *s.last
	return &note
}

// Forget clears the last read note.
func (s *Service) Forget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = nil
}
