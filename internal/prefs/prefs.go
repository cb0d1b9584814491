// Package prefs remembers the read/write format tags last used per input
// file extension, so new sessions default to what the user chose before.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Formats is the remembered pair for one extension.
type Formats struct {
	Read  string `json:"read,omitempty"`
	Write string `json:"write,omitempty"`
}

// Store is a thread-safe format-preference store backed by a JSON file,
// keyed by lower-cased file extension (".json", ".yaml", ...).
type Store struct {
	path string
	mu   sync.Mutex
	data map[string]Formats
}

// NewStore creates a new Store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path, data: make(map[string]Formats)}
}

// Load reads the store contents from disk.
// Returns nil if the file doesn't exist (treated as empty).
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.data = make(map[string]Formats)
			return nil
		}
		return err
	}

	var m map[string]Formats
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}
	if m == nil {
		m = make(map[string]Formats)
	}
	s.data = m
	return nil
}

// Get returns the remembered formats for the given path's extension, or the
// zero value if none were recorded.
func (s *Store) Get(path string) Formats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key(path)]
}

// Set records the formats for the given path's extension and persists to
// disk. A zero Formats deletes the entry.
func (s *Store) Set(path string, f Formats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(path)
	if k == "" {
		return nil
	}
	if f == (Formats{}) {
		delete(s.data, k)
	} else {
		s.data[k] = f
	}
	return s.save()
}

// save writes the current data to disk. Caller must hold mu.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0644)
}

// key normalises a path to its lower-cased extension.
func key(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
