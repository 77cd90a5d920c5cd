package driven

import (
	"context"

	"github.com/scour-search/scour-cli/internal/core/domain"
)

// IndexProvider manages the lifecycle of persistent index stores.
type IndexProvider interface {
	// Exists reports whether an index store is present at dir,
	// judged by the engine's on-disk metadata marker.
	Exists(dir string) bool

	// Create builds a fresh, empty index with the expected schema.
	Create(dir string) (Index, error)

	// Open opens an existing index store.
	Open(dir string) (Index, error)

	// Remove deletes an index store from disk.
	Remove(dir string) error
}

// Index is an opened index store. The writer it hands out is
// exclusive per process; queries are read-only.
type Index interface {
	// ValidateSchema compares the persisted schema structurally
	// against the expected one and returns an error wrapping
	// domain.ErrSchemaMismatch when they differ.
	ValidateSchema() error

	// DocCount returns the number of indexed documents.
	DocCount() (uint64, error)

	// Writer returns the exclusive writer for this index.
	Writer() (IndexWriter, error)

	// Search parses the query, scores documents, and returns at most
	// limit hits in descending score order with highlighted fragments.
	// A malformed query returns an error wrapping domain.ErrInvalidQuery.
	Search(ctx context.Context, query string, limit int) ([]Hit, error)

	// Close releases the store.
	Close() error
}

// IndexWriter stages document mutations and applies them atomically.
type IndexWriter interface {
	// DeleteAll stages removal of every previously indexed document.
	DeleteAll() error

	// Add stages a document, keyed by its path.
	Add(doc domain.Document) error

	// Commit durably applies all staged mutations in one transaction.
	Commit() error
}

// Hit is a raw engine result before rendering.
type Hit struct {
	// Path is the stored document path.
	Path string

	// Score is the engine relevance score.
	Score float64

	// Fragment is a bounded excerpt of the contents with matched
	// spans wrapped in <mark> tags.
	Fragment string
}
