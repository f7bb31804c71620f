// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voteclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"

	"github.com/danielhkuo/hackathon-showcase/models"
)

// Memory is the client-local set of voted projects
type Memory interface {
	Has(projectID int64) bool
	Add(projectID int64) error
}

// FileMemory keeps the set in a JSON file under the voted_projects key.
// Entries are strings so the file stays compatible with browser storage dumps.
type FileMemory struct {
	path string
	mu   sync.Mutex
}

func NewFileMemory(path string) *FileMemory {
	return &FileMemory{path: path}
}

// DefaultMemoryPath is voted_projects.json in the user config directory
func DefaultMemoryPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "hackathon-showcase", models.VotedProjectsKey+".json"), nil
}

// load treats a missing or corrupt file as an empty set
func (m *FileMemory) load() []string {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to read vote memory", "path", m.path, "error", err)
		}
		return nil
	}

	var doc map[string][]string
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Warn("ignoring corrupt vote memory", "path", m.path, "error", err)
		return nil
	}
	return doc[models.VotedProjectsKey]
}

func (m *FileMemory) Has(projectID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Contains(m.load(), strconv.FormatInt(projectID, 10))
}

func (m *FileMemory) Add(projectID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := m.load()
	id := strconv.FormatInt(projectID, 10)
	if slices.Contains(ids, id) {
		return nil
	}
	ids = append(ids, id)

	data, err := json.Marshal(map[string][]string{models.VotedProjectsKey: ids})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("create vote memory dir: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("write vote memory: %w", err)
	}
	return nil
}
