package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"daylog/internal/journal"
)

// ListDays scans the daily notes folder and returns the day of every file
// named YYYY-MM-DD.md, oldest first. Other files and subfolders are ignored,
// since ReadDailyNote only looks at the top level. A missing daily notes
// folder yields no days.
func (r *Reader) ListDays(ctx context.Context) ([]journal.DateKey, error) {
	_, dir, err := r.paths()
	if err != nil {
		return nil, err
	}

	var days []journal.DateKey
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}

		// Check for context cancellation
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path == dir {
				return nil
			}
			return filepath.SkipDir
		}

		name := d.Name()
		if filepath.Ext(name) != ".md" {
			return nil
		}
		day, err := journal.ParseDateKey(strings.TrimSuffix(name, ".md"))
		if err != nil {
			return nil
		}
		days = append(days, day)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan daily notes: %w", err)
	}

	slices.SortFunc(days, journal.DateKey.Compare)
	return slices.Compact(days), nil
}
