// Package memory provides in-memory driven-port implementations for
// tests.
package memory

import (
	"fmt"
	"sync"

	"github.com/scour-search/scour-cli/internal/core/domain"
	"github.com/scour-search/scour-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is an in-memory implementation of driven.ConfigStore.
type ConfigStore struct {
	mu  sync.RWMutex
	cfg *domain.AppConfig
}

// NewConfigStore creates a new in-memory config store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{}
}

// Load returns the saved config, or ErrNotInitialized when nothing has
// been saved yet.
func (s *ConfigStore) Load() (*domain.AppConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg == nil {
		return nil, fmt.Errorf("%w: run `scour init --root <path>` first", domain.ErrNotInitialized)
	}
	copied := *s.cfg
	return &copied, nil
}

// Save stores a copy of the config.
func (s *ConfigStore) Save(cfg *domain.AppConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *cfg
	s.cfg = &copied
	return nil
}

// Path returns a placeholder location.
func (s *ConfigStore) Path() string {
	return "<in-memory>"
}
