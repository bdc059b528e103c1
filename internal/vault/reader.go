// Package vault reads daily notes from an Obsidian-style folder of
// YYYY-MM-DD.md files.
package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"daylog/internal/journal"
)

// DefaultDailyNotesFolder is the folder used when none is configured.
const DefaultDailyNotesFolder = "Daily Notes"

// Reader resolves daily note paths inside a vault and reads them.
// The vault can be disconnected at runtime; a disconnected Reader reports
// Configured() == false.
type Reader struct {
	mu     sync.RWMutex
	root   string
	folder string
}

// NewReader creates a Reader over root. An empty root means no vault is
// connected. An empty folder uses DefaultDailyNotesFolder.
func NewReader(root, folder string) *Reader {
	if folder == "" {
		folder = DefaultDailyNotesFolder
	}
	return &Reader{root: root, folder: folder}
}

// Configured reports whether a vault is connected.
func (r *Reader) Configured() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.root != ""
}

// Name is the vault's directory name, or "" when disconnected.
func (r *Reader) Name() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.root == "" {
		return ""
	}
	return filepath.Base(r.root)
}

// Folder is the daily notes folder relative to the vault root.
func (r *Reader) Folder() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.folder
}

// Disconnect forgets the vault root.
func (r *Reader) Disconnect() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.root = ""
}

// Filename is the note filename for day, e.g. "2024-01-15.md".
func (r *Reader) Filename(day journal.DateKey) string {
	return day.String() + ".md"
}

var errNoVault = errors.New("no vault configured")

func (r *Reader) paths() (root, dir string, err error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.root == "" {
		return "", "", errNoVault
	}
	return r.root, filepath.Join(r.root, r.folder), nil
}

// ReadDailyNote returns the text of day's note. A missing note is reported
// with found == false and a nil error; a missing vault root is an error.
func (r *Reader) ReadDailyNote(ctx context.Context, day journal.DateKey) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	root, dir, err := r.paths()
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(root); err != nil {
		return "", false, fmt.Errorf("vault root unavailable: %w", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, r.Filename(day)))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", r.Filename(day), err)
	}
	return string(data), true, nil
}
