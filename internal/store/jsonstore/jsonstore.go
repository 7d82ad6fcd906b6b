package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Makepad-fr/menuadmin/internal/model"
)

// JSON snapshot of both lists. Single file, human-readable, portable.
// Used for export/import only; the admin never reads it back as a cache.

const DefaultFileName = "menu.json"

type Snapshot struct {
	ExportedAt time.Time        `json:"exported_at"`
	Source     string           `json:"source,omitempty"`
	Categories []model.Category `json:"categories"`
	MenuItems  []model.MenuItem `json:"menu_items"`
}

// DefaultPath is menu.json in the working directory.
func DefaultPath() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return filepath.Join(wd, DefaultFileName), nil
}

// Load reads a snapshot. A missing file is an empty snapshot.
func Load(path string) (Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{Categories: []model.Category{}, MenuItems: []model.MenuItem{}}, nil
		}
		return Snapshot{}, fmt.Errorf("read file: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return Snapshot{}, fmt.Errorf("json unmarshal: %w", err)
	}
	return s, nil
}

func Save(path string, s Snapshot) error {
	if s.Categories == nil {
		s.Categories = []model.Category{}
	}
	if s.MenuItems == nil {
		s.MenuItems = []model.MenuItem{}
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
