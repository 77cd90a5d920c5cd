package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/scour-search/scour-cli/internal/core/domain"
	"github.com/scour-search/scour-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// configDoc is the on-disk TOML shape. The timestamp is stored as an
// RFC3339 string and converted at this boundary so the domain keeps a
// plain *time.Time.
type configDoc struct {
	Root        string `toml:"root"`
	IndexDir    string `toml:"index_dir"`
	LastIndexed string `toml:"last_indexed,omitempty"`
}

func toDoc(cfg *domain.AppConfig) configDoc {
	doc := configDoc{
		Root:     cfg.Root,
		IndexDir: cfg.IndexDir,
	}
	if cfg.LastIndexed != nil {
		doc.LastIndexed = cfg.LastIndexed.Format(time.RFC3339)
	}
	return doc
}

func (d configDoc) toConfig() (*domain.AppConfig, error) {
	cfg := &domain.AppConfig{
		Root:     d.Root,
		IndexDir: d.IndexDir,
	}
	if d.LastIndexed != "" {
		ts, err := time.Parse(time.RFC3339, d.LastIndexed)
		if err != nil {
			return nil, fmt.Errorf("parse last_indexed %q: %w", d.LastIndexed, err)
		}
		cfg.LastIndexed = &ts
	}
	return cfg, nil
}

// ConfigStore is a file-based implementation of driven.ConfigStore
// using TOML. Saves rewrite the whole file; a failed save leaves the
// previous config untouched.
type ConfigStore struct {
	mu       sync.Mutex
	filePath string
}

// NewConfigStore creates a TOML config store rooted at homeDir.
// If homeDir is empty, DefaultHome is used. The directory is created
// if needed.
func NewConfigStore(homeDir string) (*ConfigStore, error) {
	if homeDir == "" {
		var err error
		homeDir, err = DefaultHome()
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(homeDir, 0700); err != nil {
		return nil, fmt.Errorf("create config directory %s: %w", homeDir, err)
	}

	return &ConfigStore{
		filePath: filepath.Join(homeDir, "config.toml"),
	}, nil
}

// Load reads the persisted config. A missing file means the tool was
// never initialised.
func (s *ConfigStore) Load() (*domain.AppConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no config at %s, run `scour init --root <path>` first", domain.ErrNotInitialized, s.filePath)
		}
		return nil, fmt.Errorf("read config file %s: %w", s.filePath, err)
	}

	var doc configDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", s.filePath, err)
	}
	cfg, err := doc.toConfig()
	if err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", s.filePath, err)
	}
	return cfg, nil
}

// Save persists the config with restricted permissions.
func (s *ConfigStore) Save(cfg *domain.AppConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(toDoc(cfg))
	if err != nil {
		return fmt.Errorf("serialize config: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("write config file %s: %w", s.filePath, err)
	}
	return nil
}

// Path returns the config file location.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// DefaultHome resolves the scour home directory: $SCOUR_HOME when set,
// otherwise ~/.scour.
func DefaultHome() (string, error) {
	if home := os.Getenv("SCOUR_HOME"); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine home directory: %w", err)
	}
	return filepath.Join(home, ".scour"), nil
}

// DefaultIndexDir returns the index store location under homeDir.
func DefaultIndexDir(homeDir string) string {
	return filepath.Join(homeDir, "index")
}
