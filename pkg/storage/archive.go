package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Archive keeps copies of generated report files on disk so a download can
// be re-fetched without re-rendering.
type Archive struct {
	baseDir string
}

// NewArchive ensures the base directory exists and returns a handle.
func NewArchive(baseDir string) (*Archive, error) {
	if baseDir == "" {
		baseDir = "./exports"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	return &Archive{baseDir: baseDir}, nil
}

// Save writes the file under the base directory and returns its absolute
// path.
func (a *Archive) Save(filename string, data []byte) (string, error) {
	path := filepath.Join(a.baseDir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write archive file: %w", err)
	}
	return path, nil
}

// Prune removes archived files older than the retention period and returns
// the removed names.
func (a *Archive) Prune(retention time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-retention)
	entries, err := os.ReadDir(a.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read archive directory: %w", err)
	}

	var removed []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return removed, fmt.Errorf("stat archive file: %w", err)
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(a.baseDir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("remove archive file: %w", err)
		}
		removed = append(removed, entry.Name())
	}
	return removed, nil
}
