package notes_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"daylog/internal/apperr"
	"daylog/internal/journal"
	"daylog/internal/notes"
	"daylog/internal/notes/mocks"
	"daylog/internal/storage"
	"daylog/internal/testutil"
)

func newService(t *testing.T) (*notes.Service, *mocks.MockReader, *storage.Store, *testutil.StubClock) {
	t.Helper()
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockReader(ctrl)
	reader.EXPECT().Filename(gomock.Any()).DoAndReturn(func(day journal.DateKey) string {
		return day.String() + ".md"
	}).AnyTimes()
	store := testutil.NewStore(t)
	clock := testutil.FixedClock()
	return notes.NewService(reader, store, clock, time.Second), reader, store, clock
}

func TestService_IngestToday(t *testing.T) {
	svc, reader, store, clock := newService(t)
	ctx := context.Background()
	today := journal.DayOf(clock.Now())

	reader.EXPECT().Configured().Return(true).Times(2)
	gomock.InOrder(
		reader.EXPECT().ReadDailyNote(gomock.Any(), today).Return("first draft", true, nil),
		reader.EXPECT().ReadDailyNote(gomock.Any(), today).Return("final text", true, nil),
	)

	first, err := svc.IngestToday(ctx)
	if err != nil {
		t.Fatalf("IngestToday() error = %v", err)
	}
	if first.Filename != "2024-01-15.md" {
		t.Errorf("Filename = %q, want 2024-01-15.md", first.Filename)
	}

	clock.Advance(time.Hour)
	second, err := svc.IngestToday(ctx)
	if err != nil {
		t.Fatalf("second IngestToday() error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second ingest ID = %q, want %q", second.ID, first.ID)
	}

	stored, err := store.Notes.GetByDay(ctx, today)
	if err != nil {
		t.Fatalf("GetByDay() error = %v", err)
	}
	if stored.RawText != "final text" {
		t.Errorf("RawText = %q, want %q", stored.RawText, "final text")
	}
	if !stored.UpdatedAt.Equal(clock.Now()) {
		t.Errorf("UpdatedAt = %v, want %v", stored.UpdatedAt, clock.Now())
	}

	last := svc.LastNote()
	if last == nil || last.Text != "final text" || last.Day != today {
		t.Errorf("LastNote() = %+v, want today's final text", last)
	}

	svc.Forget()
	if svc.LastNote() != nil {
		t.Error("LastNote() after Forget() should be nil")
	}
}

func TestService_IngestErrors(t *testing.T) {
	readErr := errors.New("permission denied")
	tests := []struct {
		name    string
		setup   func(r *mocks.MockReader)
		wantErr error
	}{
		{
			name: "unconfigured",
			setup: func(r *mocks.MockReader) {
				r.EXPECT().Configured().Return(false)
			},
			wantErr: apperr.ErrNoteSourceUnconfigured,
		},
		{
			name: "not found",
			setup: func(r *mocks.MockReader) {
				r.EXPECT().Configured().Return(true)
				r.EXPECT().ReadDailyNote(gomock.Any(), gomock.Any()).Return("", false, nil)
			},
			wantErr: apperr.ErrNoteNotFound,
		},
		{
			name: "read failure",
			setup: func(r *mocks.MockReader) {
				r.EXPECT().Configured().Return(true)
				r.EXPECT().ReadDailyNote(gomock.Any(), gomock.Any()).Return("", false, readErr)
			},
			wantErr: apperr.ErrNoteReadFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, reader, store, clock := newService(t)
			tt.setup(reader)

			_, err := svc.IngestToday(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("IngestToday() error = %v, want %v", err, tt.wantErr)
			}
			if errors.Is(tt.wantErr, apperr.ErrNoteReadFailed) && !errors.Is(err, readErr) {
				t.Errorf("IngestToday() error = %v, want it to wrap the cause", err)
			}
			if _, err := store.Notes.GetByDay(context.Background(), journal.DayOf(clock.Now())); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("a failed ingest must not write a note, GetByDay() error = %v", err)
			}
			if svc.LastNote() != nil {
				t.Error("LastNote() should be nil after a failed ingest")
			}
		})
	}
}

func TestService_IngestDayDoesNotChangeLastNote(t *testing.T) {
	svc, reader, store, _ := newService(t)
	day := journal.NewDateKey(2023, time.December, 24)

	reader.EXPECT().Configured().Return(true)
	reader.EXPECT().ReadDailyNote(gomock.Any(), day).Return("holiday", true, nil)

	if _, err := svc.IngestDay(context.Background(), day); err != nil {
		t.Fatalf("IngestDay() error = %v", err)
	}
	if svc.LastNote() != nil {
		t.Error("IngestDay() should not set LastNote()")
	}
	if _, err := store.Notes.GetByDay(context.Background(), day); err != nil {
		t.Errorf("GetByDay() error = %v", err)
	}
}

func TestService_Backfill(t *testing.T) {
	svc, reader, store, _ := newService(t)
	ctx := context.Background()

	d1 := journal.NewDateKey(2024, time.January, 1)
	d2 := journal.NewDateKey(2024, time.January, 2)
	d3 := journal.NewDateKey(2024, time.January, 3)
	d9 := journal.NewDateKey(2024, time.January, 9)

	reader.EXPECT().Configured().Return(true).AnyTimes()
	reader.EXPECT().ListDays(gomock.Any()).Return([]journal.DateKey{d1, d2, d3, d9}, nil)
	reader.EXPECT().ReadDailyNote(gomock.Any(), d2).Return("two", true, nil)
	reader.EXPECT().ReadDailyNote(gomock.Any(), d3).Return("", false, errors.New("io error"))

	report, err := svc.Backfill(ctx, d2, d3)
	if err != nil {
		t.Fatalf("Backfill() error = %v", err)
	}
	if report != (notes.BackfillReport{Days: 2, Ingested: 1, Failed: 1}) {
		t.Errorf("Backfill() report = %+v", report)
	}
	if _, err := store.Notes.GetByDay(ctx, d2); err != nil {
		t.Errorf("GetByDay(d2) error = %v", err)
	}
	if _, err := store.Notes.GetByDay(ctx, d1); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("day outside range should not be ingested, error = %v", err)
	}
}

func TestService_BackfillInvalidRange(t *testing.T) {
	svc, reader, _, _ := newService(t)
	reader.EXPECT().Configured().Return(true)

	_, err := svc.Backfill(context.Background(), journal.NewDateKey(2024, time.February, 1), journal.NewDateKey(2024, time.January, 1))
	var validationErr *apperr.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Backfill() error = %v, want ValidationError", err)
	}
}
