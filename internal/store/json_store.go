package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// JSONStore keeps one <name>.json file per world in a directory.
type JSONStore struct {
	dir string
	log *slog.Logger
	mu  sync.RWMutex
}

// NewJSONStore creates a store rooted at dir, creating it as needed.
func NewJSONStore(dir string, log *slog.Logger) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &JSONStore{dir: dir, log: log}, nil
}

func (js *JSONStore) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid world name %q", name)
	}
	return filepath.Join(js.dir, name+".json"), nil
}

// SaveWorld writes the snapshot atomically, replacing any world of the same
// name.
func (js *JSONStore) SaveWorld(s *Snapshot) error {
	path, err := js.path(s.Name)
	if err != nil {
		return err
	}
	js.mu.Lock()
	defer js.mu.Unlock()
	if err := atomicWriteJSON(path, s); err != nil {
		return fmt.Errorf("save world %s: %w", s.Name, err)
	}
	js.log.Info("saved world", "name", s.Name, "path", path)
	return nil
}

// LoadWorld reads a world by name.
func (js *JSONStore) LoadWorld(name string) (*Snapshot, error) {
	path, err := js.path(name)
	if err != nil {
		return nil, err
	}
	js.mu.RLock()
	defer js.mu.RUnlock()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("load world %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("read world %s: %w", name, err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse world %s: %w", name, err)
	}
	return &s, nil
}

// ListWorlds returns the stored world names in lexical order.
func (js *JSONStore) ListWorlds() ([]string, error) {
	js.mu.RLock()
	defer js.mu.RUnlock()
	entries, err := os.ReadDir(js.dir)
	if err != nil {
		return nil, fmt.Errorf("list worlds: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	slices.Sort(names)
	return names, nil
}

// Close is a no-op for the JSON store.
func (js *JSONStore) Close() error { return nil }

// atomicWriteJSON marshals v to JSON and writes it atomically using a temp file + rename.
func atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
