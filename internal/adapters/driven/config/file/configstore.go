// Package file persists configuration as a TOML file under the user's
// docq directory.
package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/halcyon-labs/docq-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in memory as flat dot-notation keys and
// mirrors every change to config.toml on disk.
type ConfigStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]any
}

// NewConfigStore opens the config file under configDir, creating the
// directory if needed. An empty configDir defaults to ~/.docq.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".docq")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		path:   filepath.Join(configDir, "config.toml"),
		values: make(map[string]any),
	}

	// A missing file is a fresh install, not an error.
	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.values[key]
	return val, ok
}

// GetString returns the value for key, or "" when absent or not a string.
func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt returns the value for key, or 0 when absent or not an
// integer. TOML integers decode as int64.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// GetFloat returns the value for key, or 0 when absent. Whole numbers
// decode as int64 and are widened.
func (s *ConfigStore) GetFloat(key string) float64 {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

// Set stores a configuration value and writes the file immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.save()
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save serializes values to TOML. Caller must hold the lock. The file
// may carry API keys, so it is written owner-only.
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.values)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Load replaces the in-memory values with the file contents. Nested
// TOML tables become dot-notation keys.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.values = make(map[string]any)
			return nil
		}
		return err
	}

	var parsed map[string]any
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return err
	}
	if parsed == nil {
		parsed = make(map[string]any)
	}

	s.values = flatten(parsed, "")
	return nil
}

// flatten turns {"chunk": {"max_chars": 1000}} into
// {"chunk.max_chars": 1000}, recursing through nested tables.
func flatten(m map[string]any, prefix string) map[string]any {
	out := make(map[string]any)
	for key, value := range m {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}

		nested, ok := value.(map[string]any)
		if !ok {
			out[full] = value
			continue
		}
		for k, v := range flatten(nested, full) {
			out[k] = v
		}
	}
	return out
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.path
}
