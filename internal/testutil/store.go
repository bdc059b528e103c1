package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"daylog/internal/storage"
)

// NewDB opens a migrated SQLite database in a temporary directory that is
// removed when the test ends.
func NewDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "daylog.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("storage.Migrate() error = %v", err)
	}
	return db
}

// NewStore wraps NewDB in a Store.
func NewStore(t *testing.T) *storage.Store {
	t.Helper()
	return storage.NewStore(NewDB(t))
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
