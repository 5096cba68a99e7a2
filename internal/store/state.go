// Package store persists fxui preferences between sessions.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// DarkModeKey is the preference key holding the dark mode flag.
const DarkModeKey = "darkMode"

// PreferenceStore is a small string key/value store backed by a JSON file.
// Values are string-encoded, e.g. "true" or "false" for flags.
type PreferenceStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

// NewPreferenceStore creates a store for path and reads any existing values.
// A missing or corrupt file yields an empty store.
func NewPreferenceStore(path string) (*PreferenceStore, error) {
	s := &PreferenceStore{
		path:   path,
		values: make(map[string]string),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path.
func (s *PreferenceStore) Path() string {
	return s.path
}

// Reload re-reads values from disk, replacing the in-memory copy.
func (s *PreferenceStore) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.values = make(map[string]string)
			return nil
		}
		return err
	}

	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		// If the file is corrupted, start from defaults
		values = make(map[string]string)
	}
	s.values = values
	return nil
}

// Get returns the raw value for key.
func (s *PreferenceStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and writes the file.
func (s *PreferenceStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.values[key]
	s.values[key] = value
	if err := s.save(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

// DarkMode reports whether dark mode is enabled.
// Only the exact value "true" enables it.
func (s *PreferenceStore) DarkMode() bool {
	v, _ := s.Get(DarkModeKey)
	return v == "true"
}

// SetDarkMode persists the dark mode flag.
func (s *PreferenceStore) SetDarkMode(enabled bool) error {
	return s.Set(DarkModeKey, strconv.FormatBool(enabled))
}

// ToggleDarkMode flips and persists the dark mode flag.
// Returns the new state.
func (s *PreferenceStore) ToggleDarkMode() (bool, error) {
	enabled := !s.DarkMode()
	if err := s.SetDarkMode(enabled); err != nil {
		return !enabled, err
	}
	return enabled, nil
}

// ModTime returns the last modification time of the backing file as a
// Unix timestamp, or 0 when it doesn't exist.
func (s *PreferenceStore) ModTime() int64 {
	info, err := os.Stat(s.path)
	if err != nil {
		return 0
	}
	return info.ModTime().Unix()
}

// save writes values atomically. Caller holds the lock.
func (s *PreferenceStore) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}

	// Write atomically via temp file
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}

	return os.Rename(tmpPath, s.path)
}
