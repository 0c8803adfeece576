package driven

// ConfigStore reads and writes application configuration. Values are
// addressed by flat dot-notation keys such as "chunk.max_chars".
type ConfigStore interface {
	// Get returns the raw value for key and whether it exists.
	Get(key string) (any, bool)

	// GetString returns the value for key, or "" when absent or not
	// a string.
	GetString(key string) string

	// GetInt returns the value for key, or 0 when absent or not an
	// integer.
	GetInt(key string) int

	// GetFloat returns the value for key, or 0 when absent or not
	// numeric.
	GetFloat(key string) float64

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
