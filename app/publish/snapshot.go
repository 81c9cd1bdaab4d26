package publish

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cuiamaster/comunistando/app/news"
)

// Snapshot persists the normalized item list as data/news.json, the data
// contract consumed by the site's front end.
type Snapshot struct {
	path string
}

func NewSnapshot(outputDir string) *Snapshot {
	return &Snapshot{path: filepath.Join(outputDir, "data", "news.json")}
}

func (s *Snapshot) Load() ([]news.Item, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var items []news.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return items, nil
}

// Save writes the snapshot. An empty set never replaces an existing non-empty
// snapshot, so a run where every source failed keeps yesterday's news online.
func (s *Snapshot) Save(items []news.Item) error {
	if len(items) == 0 {
		previous, err := s.Load()
		if err == nil && len(previous) > 0 {
			slog.Warn("No items collected, keeping the previous snapshot", "path", s.path, "previous", len(previous))
			return nil
		}
	}

	if items == nil {
		items = []news.Item{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(s.path), err)
	}
	return atomicWrite(s.path, append(data, '\n'))
}

// atomicWrite goes through a sibling temp file and a rename so readers never
// observe a partially written file.
func atomicWrite(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
