package driving

import (
	"context"

	"github.com/scour-search/scour-cli/internal/core/domain"
)

// Ingestor runs full ingestion passes.
type Ingestor interface {
	// Ingest rebuilds the index from a full scan of the configured
	// root: every previously indexed document is deleted, the current
	// filesystem state is re-ingested, and the result is committed
	// atomically. Per-file failures are counted in the report and
	// never abort the pass.
	Ingest(ctx context.Context) (*domain.IngestReport, error)
}
