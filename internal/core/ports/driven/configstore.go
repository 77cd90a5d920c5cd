package driven

import "github.com/scour-search/scour-cli/internal/core/domain"

// ConfigStore persists the installation configuration.
// Writes are whole-file: a save either fully succeeds or leaves the
// previous config in place.
type ConfigStore interface {
	// Load reads the config. A missing file returns an error wrapping
	// domain.ErrNotInitialized.
	Load() (*domain.AppConfig, error)

	// Save persists the config.
	Save(cfg *domain.AppConfig) error

	// Path returns the config file location, for user-facing output.
	Path() string
}
