package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"daylog/internal/journal"
)

// NoteRepo provides methods for daily note operations.
type NoteRepo struct {
	db DBTX
}

// NewNoteRepo creates a new NoteRepo.
func NewNoteRepo(db DBTX) *NoteRepo {
	return &NoteRepo{db: db}
}

// GetByDay gets the note for day.
// Returns nil and ErrNotFound if not found.
func (r *NoteRepo) GetByDay(ctx context.Context, day journal.DateKey) (*NoteRecord, error) {
	var note NoteRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT id, day, raw_text, filename, created_at, updated_at FROM daily_notes WHERE day = ?",
		day,
	).Scan(&note.ID, &note.Day, &note.RawText, &note.Filename, &note.CreatedAt, &note.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query note: %w", err)
	}
	return &note, nil
}

// Upsert inserts a new note or replaces the content of the existing one.
// The existing ID and CreatedAt are preserved.
func (r *NoteRepo) Upsert(ctx context.Context, note *NoteRecord) error {
	if note.Day.IsZero() {
		return errors.New("note record has no day")
	}
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = note.UpdatedAt
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO daily_notes (id, day, raw_text, filename, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (day) DO UPDATE SET
		 raw_text = excluded.raw_text, filename = excluded.filename, updated_at = excluded.updated_at`,
		note.ID, note.Day, note.RawText, note.Filename, note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert note: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		"SELECT id, created_at FROM daily_notes WHERE day = ?",
		note.Day,
	).Scan(&note.ID, &note.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to read back daily_notes row: %w", err)
	}
	return nil
}
