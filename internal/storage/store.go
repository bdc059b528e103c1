package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so repositories can run
// inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store owns the metrics, note and entry collections.
// The repositories on Store run outside any transaction and are meant for
// reads; writes go through Begin so callers choose their commit boundary.
type Store struct {
	db      *sql.DB
	Metrics *MetricsRepo
	Notes   *NoteRepo
	Entries *EntryRepo
}

// NewStore creates a Store over an open, migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:      db,
		Metrics: NewMetricsRepo(db),
		Notes:   NewNoteRepo(db),
		Entries: NewEntryRepo(db),
	}
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Begin starts a transaction. Nothing written through the returned Tx is
// visible until Commit succeeds.
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{
		tx:      tx,
		Metrics: NewMetricsRepo(tx),
		Notes:   NewNoteRepo(tx),
		Entries: NewEntryRepo(tx),
	}, nil
}

// Tx is a unit of work over all three collections.
type Tx struct {
	tx      *sql.Tx
	Metrics *MetricsRepo
	Notes   *NoteRepo
	Entries *EntryRepo
}

func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback discards the transaction. Calling it after Commit is a no-op,
// so it is safe to defer.
func (t *Tx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to roll back transaction: %w", err)
	}
	return nil
}
