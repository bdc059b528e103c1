package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"daylog/internal/journal"
)

// EntryFilter narrows List. Zero fields do not filter.
type EntryFilter struct {
	From     journal.DateKey
	To       journal.DateKey
	Category *journal.Category
}

// EntryRepo provides methods for categorized entry operations.
type EntryRepo struct {
	db DBTX
}

// NewEntryRepo creates a new EntryRepo.
func NewEntryRepo(db DBTX) *EntryRepo {
	return &EntryRepo{db: db}
}

const entryColumns = "id, day, category, content, note_day, created_at, updated_at"

// GetByDayAndCategory returns the entry keyed by (day, category), or ErrNotFound.
func (r *EntryRepo) GetByDayAndCategory(ctx context.Context, day journal.DateKey, category journal.Category) (*EntryRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM entries WHERE day = ? AND category = ?",
		day, string(category),
	)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query entry: %w", err)
	}
	return entry, nil
}

// Upsert inserts entry or updates content and updated_at of the existing
// (day, category) row. NoteDay is only written on insert.
func (r *EntryRepo) Upsert(ctx context.Context, entry *EntryRecord) error {
	if entry.Day.IsZero() {
		return errors.New("entry record has no day")
	}
	if entry.NoteDay.IsZero() {
		entry.NoteDay = entry.Day
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = entry.UpdatedAt
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO entries (`+entryColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (day, category) DO UPDATE SET
		 content = excluded.content, updated_at = excluded.updated_at`,
		entry.ID, entry.Day, string(entry.Category), entry.Content, entry.NoteDay, entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert entry: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		"SELECT id, note_day, created_at FROM entries WHERE day = ? AND category = ?",
		entry.Day, string(entry.Category),
	).Scan(&entry.ID, &entry.NoteDay, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to read back entries row: %w", err)
	}
	return nil
}

// List returns entries matching filter ordered by day descending, then
// category code ascending.
func (r *EntryRepo) List(ctx context.Context, filter EntryFilter) ([]EntryRecord, error) {
	query := "SELECT " + entryColumns + " FROM entries WHERE 1 = 1"
	var args []any
	if !filter.From.IsZero() {
		query += " AND day >= ?"
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		query += " AND day <= ?"
		args = append(args, filter.To)
	}
	if filter.Category != nil {
		query += " AND category = ?"
		args = append(args, string(*filter.Category))
	}
	query += " ORDER BY day DESC, category ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []EntryRecord
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return entries, nil
}

// Count returns the total number of stored entries.
func (r *EntryRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return n, nil
}

func scanEntry(row rowScanner) (*EntryRecord, error) {
	var (
		entry    EntryRecord
		category string
	)
	if err := row.Scan(&entry.ID, &entry.Day, &category, &entry.Content, &entry.NoteDay, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
		return nil, err
	}
	entry.Category = journal.Category(category)
	return &entry, nil
}
