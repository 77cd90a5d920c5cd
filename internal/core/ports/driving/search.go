package driving

import (
	"context"

	"github.com/scour-search/scour-cli/internal/core/domain"
)

// Searcher answers free-text queries against the index.
type Searcher interface {
	// Search returns the ranked, snippeted results for a query.
	// Distinct states surface as sentinel errors: domain.ErrNeverIndexed
	// when no pass has completed, domain.ErrIndexEmpty when the index
	// holds zero documents, domain.ErrInvalidQuery on a malformed query.
	// A query that parses but matches nothing returns an empty slice.
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)
}
