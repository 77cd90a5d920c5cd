package driving

import (
	"context"

	"github.com/scour-search/scour-cli/internal/core/domain"
)

// Initializer creates or validates the index store and writes the
// installation config.
type Initializer interface {
	// Init canonicalises root, creates (or, without force, validates)
	// the index, and persists a fresh config. A schema mismatch on an
	// existing index is fatal unless force is set, in which case the
	// index is removed and recreated.
	Init(ctx context.Context, root string, force bool) (*domain.InitResult, error)
}
