package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_journal_service.go -package=mocks -mock_names=JournalService=MockJournalService daylog/internal/service JournalService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"daylog/internal/apperr"
	"daylog/internal/categorize"
	"daylog/internal/contextutil"
	"daylog/internal/journal"
	"daylog/internal/metrics"
	"daylog/internal/notes"
	"daylog/internal/storage"
	"daylog/internal/timeline"
)

// MetricsSyncer syncs a window of biometric data into the store.
type MetricsSyncer interface {
	SyncWindow(ctx context.Context, windowDays int) (metrics.SyncReport, error)
}

// NoteIngester reads daily notes into the store.
type NoteIngester interface {
	IngestToday(ctx context.Context) (*storage.NoteRecord, error)
	IngestDay(ctx context.Context, day journal.DateKey) (*storage.NoteRecord, error)
	Backfill(ctx context.Context, from, to journal.DateKey) (notes.BackfillReport, error)
	LastNote() *notes.LoadedNote
	Forget()
}

// Categorizer extracts categorized entries from note text.
type Categorizer interface {
	Categorize(ctx context.Context, noteText string) (categorize.Result, error)
}

// CredentialValidator checks the categorization service credentials.
type CredentialValidator interface {
	Validate(ctx context.Context) error
}

// Vault describes the connected note vault.
type Vault interface {
	Configured() bool
	Name() string
	Folder() string
	Disconnect()
}

// DayDetail is everything recorded for one day. Any part may be absent.
type DayDetail struct {
	Day     journal.DateKey        `json:"day"`
	Metrics *storage.MetricsRecord `json:"metrics,omitempty"`
	Note    *storage.NoteRecord    `json:"note,omitempty"`
	Entries []storage.EntryRecord  `json:"entries"`
}

// VaultStatus reports the connected vault.
type VaultStatus struct {
	Configured       bool   `json:"configured"`
	Name             string `json:"name,omitempty"`
	DailyNotesFolder string `json:"daily_notes_folder"`
}

// Status holds the advisory busy flags and the last outcome messages.
type Status struct {
	Syncing          bool   `json:"syncing"`
	Ingesting        bool   `json:"ingesting"`
	Categorizing     bool   `json:"categorizing"`
	LastError        string `json:"last_error,omitempty"`
	LastParseMessage string `json:"last_parse_message,omitempty"`
}

// JournalService is the single entry point the transports use.
type JournalService interface {
	// SyncMetrics syncs the last days days of biometric data. Zero uses the
	// configured window.
	SyncMetrics(ctx context.Context, days int) (metrics.SyncReport, error)
	IngestToday(ctx context.Context) (*storage.NoteRecord, error)
	IngestDay(ctx context.Context, day journal.DateKey) (*storage.NoteRecord, error)
	Backfill(ctx context.Context, from, to journal.DateKey) (notes.BackfillReport, error)
	// CategorizeLastNote categorizes the last note read for today, falling
	// back to today's stored note.
	CategorizeLastNote(ctx context.Context) (categorize.Result, error)
	Timeline(ctx context.Context, filter *journal.Category) ([]timeline.WeekGroup, error)
	DayDetail(ctx context.Context, day journal.DateKey) (DayDetail, error)
	RecentMetrics(ctx context.Context, days int) ([]storage.MetricsRecord, error)
	ValidateCredentials(ctx context.Context) error
	VaultStatus() VaultStatus
	DisconnectVault()
	Status() Status
}

// Options tunes a Journal.
type Options struct {
	SyncWindowDays    int
	WeekStart         time.Weekday
	ValidationTimeout time.Duration
}

// Journal implements JournalService.
type Journal struct {
	syncer      MetricsSyncer
	ingester    NoteIngester
	categorizer Categorizer
	validator   CredentialValidator
	vault       Vault
	store       *storage.Store
	clock       journal.Clock
	opts        Options
	logger      *slog.Logger

	syncing      atomic.Bool
	ingesting    atomic.Bool
	categorizing atomic.Bool

	mu               sync.Mutex
	lastError        string
	lastParseMessage string
}

var _ JournalService = (*Journal)(nil)

// NewJournal creates a Journal.
func NewJournal(
	syncer MetricsSyncer,
	ingester NoteIngester,
	categorizer Categorizer,
	validator CredentialValidator,
	vault Vault,
	store *storage.Store,
	clock journal.Clock,
	opts Options,
) *Journal {
	if opts.SyncWindowDays <= 0 {
		opts.SyncWindowDays = 7
	}
	if opts.ValidationTimeout <= 0 {
		opts.ValidationTimeout = 30 * time.Second
	}
	return &Journal{
		syncer:      syncer,
		ingester:    ingester,
		categorizer: categorizer,
		validator:   validator,
		vault:       vault,
		store:       store,
		clock:       clock,
		opts:        opts,
		logger:      slog.Default(),
	}
}

func (j *Journal) today() journal.DateKey {
	return journal.DayOf(j.clock.Now())
}

// record stores the user-facing message for err, or clears it on success.
func (j *Journal) record(err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.lastError = apperr.Message(err)
}

func (j *Journal) SyncMetrics(ctx context.Context, days int) (metrics.SyncReport, error) {
	if days == 0 {
		days = j.opts.SyncWindowDays
	}
	j.syncing.Store(true)
	defer j.syncing.Store(false)

	report, err := j.syncer.SyncWindow(ctx, days)
	j.record(err)
	if err != nil {
		return report, WrapError(err, "failed to sync metrics")
	}
	return report, nil
}

func (j *Journal) IngestToday(ctx context.Context) (*storage.NoteRecord, error) {
	j.ingesting.Store(true)
	defer j.ingesting.Store(false)

	rec, err := j.ingester.IngestToday(ctx)
	j.record(err)
	return rec, err
}

func (j *Journal) IngestDay(ctx context.Context, day journal.DateKey) (*storage.NoteRecord, error) {
	if day.IsZero() {
		return nil, &ValidationError{Field: "day", Message: "cannot be empty"}
	}
	j.ingesting.Store(true)
	defer j.ingesting.Store(false)

	rec, err := j.ingester.IngestDay(ctx, day)
	j.record(err)
	return rec, err
}

func (j *Journal) Backfill(ctx context.Context, from, to journal.DateKey) (notes.BackfillReport, error) {
	j.ingesting.Store(true)
	defer j.ingesting.Store(false)

	report, err := j.ingester.Backfill(ctx, from, to)
	j.record(err)
	return report, err
}

func (j *Journal) CategorizeLastNote(ctx context.Context) (categorize.Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	j.categorizing.Store(true)
	defer j.categorizing.Store(false)

	text, err := j.noteText(ctx)
	if err != nil {
		j.record(err)
		return categorize.Result{}, err
	}

	result, err := j.categorizer.Categorize(ctx, text)
	j.record(err)
	if err != nil {
		logger.ErrorContext(ctx, "categorization failed", "error", err)
		return result, err
	}

	j.mu.Lock()
	j.lastParseMessage = fmt.Sprintf("Parsed %d categories.", result.Parsed)
	j.mu.Unlock()
	return result, nil
}

// noteText prefers the in-memory note and falls back to today's stored one.
// A note read on an earlier day is stale and ignored.
func (j *Journal) noteText(ctx context.Context) (string, error) {
	today := j.today()
	if last := j.ingester.LastNote(); last != nil && last.Day == today {
		return last.Text, nil
	}
	rec, err := j.store.Notes.GetByDay(ctx, today)
	if errors.Is(err, storage.ErrNotFound) {
		return "", apperr.ErrNoNoteLoaded
	}
	if err != nil {
		return "", &apperr.PersistenceError{Op: "load today's note", Err: err}
	}
	return rec.RawText, nil
}

func (j *Journal) Timeline(ctx context.Context, filter *journal.Category) ([]timeline.WeekGroup, error) {
	entries, err := j.store.Entries.List(ctx, storage.EntryFilter{Category: filter})
	if err != nil {
		return nil, WrapError(err, "failed to list entries")
	}
	return timeline.Group(entries, filter, j.opts.WeekStart), nil
}

func (j *Journal) DayDetail(ctx context.Context, day journal.DateKey) (DayDetail, error) {
	if day.IsZero() {
		return DayDetail{}, &ValidationError{Field: "day", Message: "cannot be empty"}
	}
	detail := DayDetail{Day: day}

	m, err := j.store.Metrics.GetByDay(ctx, day)
	switch {
	case err == nil:
		detail.Metrics = m
	case !errors.Is(err, storage.ErrNotFound):
		return DayDetail{}, WrapError(err, "failed to load metrics")
	}

	n, err := j.store.Notes.GetByDay(ctx, day)
	switch {
	case err == nil:
		detail.Note = n
	case !errors.Is(err, storage.ErrNotFound):
		return DayDetail{}, WrapError(err, "failed to load note")
	}

	entries, err := j.store.Entries.List(ctx, storage.EntryFilter{From: day, To: day})
	if err != nil {
		return DayDetail{}, WrapError(err, "failed to load entries")
	}
	detail.Entries = entries
	if detail.Entries == nil {
		detail.Entries = []storage.EntryRecord{}
	}
	return detail, nil
}

func (j *Journal) RecentMetrics(ctx context.Context, days int) ([]storage.MetricsRecord, error) {
	if days == 0 {
		days = j.opts.SyncWindowDays
	}
	if days < 0 {
		return nil, &ValidationError{Field: "days", Message: "must be positive"}
	}
	today := j.today()
	records, err := j.store.Metrics.List(ctx, today.AddDays(-(days - 1)), today)
	if err != nil {
		return nil, WrapError(err, "failed to list metrics")
	}
	return records, nil
}

func (j *Journal) ValidateCredentials(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.opts.ValidationTimeout)
	defer cancel()

	err := j.validator.Validate(ctx)
	j.record(err)
	return err
}

func (j *Journal) VaultStatus() VaultStatus {
	return VaultStatus{
		Configured:       j.vault.Configured(),
		Name:             j.vault.Name(),
		DailyNotesFolder: j.vault.Folder(),
	}
}

// DisconnectVault forgets the vault and the last read note. Stored notes
// are kept.
func (j *Journal) DisconnectVault() {
	j.vault.Disconnect()
	j.ingester.Forget()
	j.logger.Info("vault disconnected")
}

func (j *Journal) Status() Status {
	j.mu.Lock()
	defer j.mu.Unlock()
	return Status{
		Syncing:          j.syncing.Load(),
		Ingesting:        j.ingesting.Load(),
		Categorizing:     j.categorizing.Load(),
		LastError:        j.lastError,
		LastParseMessage: j.lastParseMessage,
	}
}
