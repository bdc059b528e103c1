package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"daylog/internal/journal"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(newTestDB(t))
}

func ptr[T any](v T) *T { return &v }

var (
	day1 = journal.NewDateKey(2024, time.March, 1)
	day2 = journal.NewDateKey(2024, time.March, 2)
	day3 = journal.NewDateKey(2024, time.March, 3)
	t0   = time.Date(2024, time.March, 3, 9, 0, 0, 0, time.UTC)
)

func TestTx_CommitMakesWritesVisible(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	tx, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := tx.Entries.Upsert(ctx, &EntryRecord{Day: day1, Category: journal.Work, Content: "shipped", UpdatedAt: t0}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	got, err := store.Entries.GetByDayAndCategory(ctx, day1, journal.Work)
	if err != nil {
		t.Fatalf("GetByDayAndCategory() error = %v", err)
	}
	if got.Content != "shipped" {
		t.Errorf("Content = %q, want %q", got.Content, "shipped")
	}
}

func TestTx_RollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	tx, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	for _, c := range []journal.Category{journal.Work, journal.Food} {
		if err := tx.Entries.Upsert(ctx, &EntryRecord{Day: day1, Category: c, Content: "x", UpdatedAt: t0}); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback() error = %v", err)
	}

	n, err := store.Entries.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Count() = %d after rollback, want 0", n)
	}
}

func TestTx_RollbackAfterCommitIsNoop(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	tx, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Errorf("Rollback() after Commit error = %v, want nil", err)
	}
}

func TestStore_Ping(t *testing.T) {
	if err := newTestStore(t).Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestMetricsRepo_UpsertAndGet(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t).Metrics

	first := &MetricsRecord{Day: day1, Steps: ptr(1000), SleepHours: ptr(7.5), UpdatedAt: t0}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if first.ID == "" {
		t.Fatal("Upsert() did not assign an ID")
	}

	later := t0.Add(time.Hour)
	second := &MetricsRecord{Day: day1, Steps: ptr(2000), WeightKg: ptr(70.2), UpdatedAt: later}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second Upsert() ID = %q, want existing %q", second.ID, first.ID)
	}
	if !second.CreatedAt.Equal(t0) {
		t.Errorf("second Upsert() CreatedAt = %v, want %v", second.CreatedAt, t0)
	}

	got, err := repo.GetByDay(ctx, day1)
	if err != nil {
		t.Fatalf("GetByDay() error = %v", err)
	}
	if got.Steps == nil || *got.Steps != 2000 {
		t.Errorf("Steps = %v, want 2000", got.Steps)
	}
	if got.SleepHours != nil {
		t.Errorf("SleepHours = %v, want nil after overwrite", *got.SleepHours)
	}
	if got.WeightKg == nil || *got.WeightKg != 70.2 {
		t.Errorf("WeightKg = %v, want 70.2", got.WeightKg)
	}
	if got.RestingHeartRate != nil {
		t.Errorf("RestingHeartRate = %v, want nil", *got.RestingHeartRate)
	}
	if !got.UpdatedAt.Equal(later) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, later)
	}
	if got.Day != day1 {
		t.Errorf("Day = %v, want %v", got.Day, day1)
	}
}

func TestMetricsRepo_GetByDayNotFound(t *testing.T) {
	_, err := newTestStore(t).Metrics.GetByDay(context.Background(), day1)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByDay() error = %v, want ErrNotFound", err)
	}
}

func TestMetricsRepo_List(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t).Metrics
	for _, d := range []journal.DateKey{day2, day1, day3} {
		if err := repo.Upsert(ctx, &MetricsRecord{Day: d, UpdatedAt: t0}); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	tests := []struct {
		name     string
		from, to journal.DateKey
		want     []journal.DateKey
	}{
		{name: "open range", want: []journal.DateKey{day3, day2, day1}},
		{name: "from only", from: day2, want: []journal.DateKey{day3, day2}},
		{name: "bounded", from: day1, to: day2, want: []journal.DateKey{day2, day1}},
		{name: "empty", from: day3.AddDays(1), want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.from, tt.to)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("List() returned %d records, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Day != tt.want[i] {
					t.Errorf("List()[%d].Day = %v, want %v", i, got[i].Day, tt.want[i])
				}
			}
		})
	}
}

func TestNoteRepo_UpsertReplacesContent(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t).Notes

	first := &NoteRecord{Day: day1, RawText: "morning", Filename: "2024-03-01.md", UpdatedAt: t0}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	second := &NoteRecord{Day: day1, RawText: "evening", Filename: "2024-03-01.md", UpdatedAt: t0.Add(time.Hour)}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	got, err := repo.GetByDay(ctx, day1)
	if err != nil {
		t.Fatalf("GetByDay() error = %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("ID = %q, want %q", got.ID, first.ID)
	}
	if got.RawText != "evening" {
		t.Errorf("RawText = %q, want %q", got.RawText, "evening")
	}

	if _, err := repo.GetByDay(ctx, day2); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByDay(missing) error = %v, want ErrNotFound", err)
	}
}

func TestEntryRepo_UpsertKeepsOneRowPerDayAndCategory(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t).Entries

	first := &EntryRecord{Day: day1, Category: journal.Workout, Content: "ran 5k", UpdatedAt: t0}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	second := &EntryRecord{Day: day1, Category: journal.Workout, Content: "ran 10k", UpdatedAt: t0.Add(time.Minute)}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
	got, err := repo.GetByDayAndCategory(ctx, day1, journal.Workout)
	if err != nil {
		t.Fatalf("GetByDayAndCategory() error = %v", err)
	}
	if got.Content != "ran 10k" {
		t.Errorf("Content = %q, want %q", got.Content, "ran 10k")
	}
	if got.ID != first.ID {
		t.Errorf("ID = %q, want %q", got.ID, first.ID)
	}
	if got.NoteDay != day1 {
		t.Errorf("NoteDay = %v, want %v", got.NoteDay, day1)
	}
}

func TestEntryRepo_List(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t).Entries

	seed := []EntryRecord{
		{Day: day1, Category: journal.Work, Content: "a"},
		{Day: day1, Category: journal.Food, Content: "b"},
		{Day: day2, Category: journal.Work, Content: "c"},
		{Day: day3, Category: journal.Reading, Content: "d"},
	}
	for i := range seed {
		seed[i].UpdatedAt = t0
		if err := repo.Upsert(ctx, &seed[i]); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	work := journal.Work
	tests := []struct {
		name   string
		filter EntryFilter
		want   []string
	}{
		{name: "all", want: []string{"d", "c", "b", "a"}},
		{name: "category", filter: EntryFilter{Category: &work}, want: []string{"c", "a"}},
		{name: "range", filter: EntryFilter{From: day1, To: day1}, want: []string{"b", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("List() returned %d entries, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Content != tt.want[i] {
					t.Errorf("List()[%d].Content = %q, want %q", i, got[i].Content, tt.want[i])
				}
			}
		})
	}
}
