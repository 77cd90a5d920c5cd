package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/scour-search/scour-cli/internal/core/domain"
	"github.com/scour-search/scour-cli/internal/core/ports/driven"
	"github.com/scour-search/scour-cli/internal/core/ports/driving"
	"github.com/scour-search/scour-cli/internal/logger"
)

// topResults is the fixed result cap per query.
const topResults = 20

// Ensure SearchService implements the interface.
var _ driving.Searcher = (*SearchService)(nil)

// SearchService parses a user query through the index engine, retrieves
// the top scored documents, and renders them as relativised, snippeted
// results.
type SearchService struct {
	configStore driven.ConfigStore
	provider    driven.IndexProvider
}

// NewSearchService creates a new search service.
func NewSearchService(configStore driven.ConfigStore, provider driven.IndexProvider) *SearchService {
	return &SearchService{
		configStore: configStore,
		provider:    provider,
	}
}

// Search runs one query against the persisted index.
func (s *SearchService) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	logger.Section("Query Execution")
	logger.Debug("Query: %q", query)

	cfg, err := s.configStore.Load()
	if err != nil {
		return nil, err
	}

	if cfg.LastIndexed == nil {
		return nil, fmt.Errorf("%w for %s: run `scour index` to scan your files", domain.ErrNeverIndexed, cfg.Root)
	}

	if !s.provider.Exists(cfg.IndexDir) {
		return nil, fmt.Errorf("%w at %s: re-run `scour init` followed by `scour index`", domain.ErrIndexMissing, cfg.IndexDir)
	}

	idx, err := s.provider.Open(cfg.IndexDir)
	if err != nil {
		return nil, fmt.Errorf("open index at %s: %w", cfg.IndexDir, err)
	}
	defer idx.Close()

	count, err := idx.DocCount()
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: run `scour index` to index files under %s", domain.ErrIndexEmpty, cfg.Root)
	}

	hits, err := idx.Search(ctx, query, topResults)
	if err != nil {
		return nil, err
	}
	logger.Debug("Hits: %d (index holds %d documents)", len(hits), count)

	results := make([]domain.SearchResult, 0, len(hits))
	for i, hit := range hits {
		results = append(results, domain.SearchResult{
			Rank:    i + 1,
			Score:   hit.Score,
			Path:    relativize(cfg.Root, hit.Path),
			Snippet: hit.Fragment,
		})
	}
	return results, nil
}

// relativize rewrites path relative to root when it is a descendant.
// Paths outside root (for example after the root changed between
// indexing and searching) stay absolute; that is not an error.
func relativize(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
