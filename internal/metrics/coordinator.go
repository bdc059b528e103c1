package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"daylog/internal/apperr"
	"daylog/internal/contextutil"
	"daylog/internal/journal"
	"daylog/internal/storage"
)

// DefaultTimeout bounds each provider call when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// SyncReport summarizes a window sync.
type SyncReport struct {
	Days   int `json:"days"`
	Synced int `json:"synced"`
	Failed int `json:"failed"`
}

// Coordinator syncs a rolling window of days from a Provider into the store.
// At most one SyncWindow runs at a time.
type Coordinator struct {
	provider Provider
	store    *storage.Store
	clock    journal.Clock
	timeout  time.Duration
	running  atomic.Bool
}

// NewCoordinator creates a Coordinator. A non-positive timeout uses DefaultTimeout.
func NewCoordinator(provider Provider, store *storage.Store, clock journal.Clock, timeout time.Duration) *Coordinator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Coordinator{
		provider: provider,
		store:    store,
		clock:    clock,
		timeout:  timeout,
	}
}

// Running reports whether a sync is in progress.
func (c *Coordinator) Running() bool {
	return c.running.Load()
}

// SyncWindow fetches today and the windowDays-1 days before it and upserts
// one MetricsRecord per day.
//
// An unavailable provider is a silent no-op. Failed authorization aborts
// before any day is fetched. A day that fails to fetch or save is logged
// and skipped; it never fails the whole sync. Each day commits on its own.
func (c *Coordinator) SyncWindow(ctx context.Context, windowDays int) (SyncReport, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if windowDays < 1 {
		return SyncReport{}, &apperr.ValidationError{Field: "days", Message: "must be at least 1"}
	}

	if !c.provider.IsAvailable() {
		logger.DebugContext(ctx, "metrics provider unavailable, skipping sync")
		return SyncReport{}, nil
	}

	if !c.running.CompareAndSwap(false, true) {
		return SyncReport{}, apperr.ErrSyncInProgress
	}
	defer c.running.Store(false)

	if err := c.authorize(ctx); err != nil {
		logger.WarnContext(ctx, "metrics authorization failed", "error", err)
		return SyncReport{}, err
	}

	now := c.clock.Now()
	today := journal.DayOf(now)
	report := SyncReport{}

	for offset := range windowDays {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		day := today.AddDays(-offset)
		report.Days++
		if err := c.syncDay(ctx, day, now); err != nil {
			report.Failed++
			logger.ErrorContext(ctx, "failed to sync day", "day", day.String(), "error", err)
			continue
		}
		report.Synced++
	}

	logger.InfoContext(ctx, "metrics sync complete",
		slog.Int("days", report.Days),
		slog.Int("synced", report.Synced),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}

func (c *Coordinator) authorize(ctx context.Context) error {
	authCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.provider.RequestAuthorization(authCtx)
	if err == nil || errors.Is(err, apperr.ErrAuthorizationDenied) {
		return err
	}
	return fmt.Errorf("%w: %w", apperr.ErrAuthorizationDenied, err)
}

func (c *Coordinator) syncDay(ctx context.Context, day journal.DateKey, now time.Time) error {
	fetchCtx, cancel := context.WithTimeout(ctx, c.timeout)
	snapshot, err := c.provider.FetchDay(fetchCtx, day)
	cancel()
	if err != nil {
		return &apperr.ProviderFetchError{Day: day, Err: err}
	}

	if err := c.save(ctx, day, snapshot, now); err != nil {
		return &apperr.PersistenceError{Op: "save metrics for " + day.String(), Attempted: 1, Err: err}
	}
	return nil
}

func (c *Coordinator) save(ctx context.Context, day journal.DateKey, snapshot Snapshot, now time.Time) error {
	tx, err := c.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	rec, err := tx.Metrics.GetByDay(ctx, day)
	if errors.Is(err, storage.ErrNotFound) {
		rec = &storage.MetricsRecord{Day: day, CreatedAt: now}
	} else if err != nil {
		return err
	}

	rec.Steps = snapshot.Steps
	rec.SleepHours = snapshot.SleepHours
	rec.WeightKg = snapshot.WeightKg
	rec.RestingHeartRate = snapshot.RestingHeartRate
	rec.UpdatedAt = now

	if err := tx.Metrics.Upsert(ctx, rec); err != nil {
		return err
	}
	return tx.Commit()
}
