package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scour-search/scour-cli/internal/core/domain"
	"github.com/scour-search/scour-cli/internal/core/ports/driven"
	"github.com/scour-search/scour-cli/internal/core/ports/driving"
	"github.com/scour-search/scour-cli/internal/logger"
)

// Ensure LifecycleService implements the interface.
var _ driving.Initializer = (*LifecycleService)(nil)

// LifecycleService creates, validates, and recreates the persistent
// index store, keeping the on-disk schema consistent with what the
// ingestion pipeline expects.
type LifecycleService struct {
	configStore driven.ConfigStore
	provider    driven.IndexProvider
	indexDir    string
}

// NewLifecycleService creates a new lifecycle service. indexDir is the
// target location for the index store.
func NewLifecycleService(configStore driven.ConfigStore, provider driven.IndexProvider, indexDir string) *LifecycleService {
	return &LifecycleService{
		configStore: configStore,
		provider:    provider,
		indexDir:    indexDir,
	}
}

// Init creates or validates the index for root and persists a fresh
// config. Without force, an existing index is kept only when its
// persisted schema structurally matches the expected one; with force
// (or when absent) the store is removed and recreated empty.
func (s *LifecycleService) Init(_ context.Context, root string, force bool) (*domain.InitResult, error) {
	rootPath, err := ResolveRoot(root)
	if err != nil {
		return nil, err
	}

	exists := s.provider.Exists(s.indexDir)
	reused := false

	switch {
	case exists && !force:
		logger.Info("Validating existing index at %s", s.indexDir)
		idx, err := s.provider.Open(s.indexDir)
		if err != nil {
			return nil, fmt.Errorf("open existing index at %s (re-run init with --force to recreate it): %w", s.indexDir, err)
		}
		verr := idx.ValidateSchema()
		if cerr := idx.Close(); cerr != nil && verr == nil {
			verr = fmt.Errorf("close index: %w", cerr)
		}
		if verr != nil {
			return nil, fmt.Errorf("existing index at %s is unusable (re-run init with --force to recreate it): %w", s.indexDir, verr)
		}
		reused = true

	default:
		if exists {
			logger.Info("Removing existing index at %s (--force)", s.indexDir)
			if err := s.provider.Remove(s.indexDir); err != nil {
				return nil, fmt.Errorf("remove existing index at %s: %w", s.indexDir, err)
			}
		}
		idx, err := s.provider.Create(s.indexDir)
		if err != nil {
			return nil, fmt.Errorf("create index at %s: %w", s.indexDir, err)
		}
		if err := idx.Close(); err != nil {
			return nil, fmt.Errorf("close new index: %w", err)
		}
	}

	cfg := &domain.AppConfig{
		Root:     rootPath,
		IndexDir: s.indexDir,
	}
	if err := s.configStore.Save(cfg); err != nil {
		return nil, fmt.Errorf("save config: %w", err)
	}

	return &domain.InitResult{
		Root:       rootPath,
		IndexDir:   s.indexDir,
		ConfigPath: s.configStore.Path(),
		Reused:     reused,
	}, nil
}

// ResolveRoot canonicalises a root directory argument: absolute path,
// symlinks resolved, and it must name an existing directory.
func ResolveRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root path %s: %w", root, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("root path does not exist or is invalid: %s: %w", root, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("stat root path %s: %w", resolved, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("root path is not a directory: %s", resolved)
	}
	return resolved, nil
}
