package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ImportDir loads every collection directory under dir (each holding a
// manifest.yaml) into the store and returns the number of collections imported.
// A collection that fails to load aborts the import; collections already
// stored are kept.
func ImportDir(ctx context.Context, s *Store, dir string, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read corpus dir %s: %w", dir, err)
	}

	n := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(dir, entry.Name())
		if _, err := os.Stat(filepath.Join(sub, "manifest.yaml")); err != nil {
			continue
		}
		c, err := LoadCollection(ctx, sub)
		if err != nil {
			return n, fmt.Errorf("load collection %s: %w", entry.Name(), err)
		}
		if err := s.ReplaceCollection(c); err != nil {
			return n, err
		}
		logger.Info("collection imported", "collection", c.Manifest.ID, "passages", len(c.Passages))
		n++
	}
	return n, nil
}
