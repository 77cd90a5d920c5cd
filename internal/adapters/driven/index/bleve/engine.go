package bleve

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/scour-search/scour-cli/internal/core/domain"
	"github.com/scour-search/scour-cli/internal/core/ports/driven"
)

// snippetMaxChars bounds fallback snippets when a hit matched on the
// path only and the engine produced no contents fragment. Highlight
// fragments themselves are bounded by bleve's fragmenter (200 chars).
const snippetMaxChars = 200

// Ensure the adapter implements the ports.
var (
	_ driven.IndexProvider = (*Provider)(nil)
	_ driven.Index         = (*Index)(nil)
	_ driven.IndexWriter   = (*Writer)(nil)
)

// Provider manages bleve index stores on the local filesystem.
type Provider struct{}

// NewProvider creates a bleve index provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Exists reports whether dir holds a bleve index, judged by the
// metadata marker file.
func (p *Provider) Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, metaFile))
	return err == nil
}

// Create builds a fresh, empty index with the expected schema.
func (p *Provider) Create(dir string) (driven.Index, error) {
	if err := os.MkdirAll(filepath.Dir(dir), 0700); err != nil {
		return nil, fmt.Errorf("create index parent directory: %w", err)
	}
	idx, err := bleve.New(dir, buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create bleve index: %w", err)
	}
	return &Index{idx: idx}, nil
}

// Open opens an existing index store.
func (p *Provider) Open(dir string) (driven.Index, error) {
	idx, err := bleve.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open bleve index: %w", err)
	}
	return &Index{idx: idx}, nil
}

// Remove deletes the index store directory.
func (p *Provider) Remove(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove index directory %s: %w", dir, err)
	}
	return nil
}

// Index wraps an opened bleve index.
type Index struct {
	idx bleve.Index
}

// ValidateSchema compares the persisted mapping against the expected
// schema.
func (i *Index) ValidateSchema() error {
	return validateSchema(i.idx.Mapping())
}

// DocCount returns the number of indexed documents.
func (i *Index) DocCount() (uint64, error) {
	return i.idx.DocCount()
}

// Writer returns a batch-backed writer. Mutations stage in memory and
// apply atomically on Commit.
func (i *Index) Writer() (driven.IndexWriter, error) {
	return &Writer{idx: i.idx, batch: i.idx.NewBatch()}, nil
}

// Search parses query with bleve's query-string grammar and returns the
// top hits with highlighted contents fragments.
func (i *Index) Search(ctx context.Context, q string, limit int) ([]driven.Hit, error) {
	qs := bleve.NewQueryStringQuery(q)
	if _, err := qs.Parse(); err != nil {
		return nil, fmt.Errorf("%w %q: %v", domain.ErrInvalidQuery, q, err)
	}

	req := bleve.NewSearchRequestOptions(qs, limit, 0, false)
	req.Fields = []string{fieldPath, fieldContents}
	req.Highlight = bleve.NewHighlightWithStyle("html")
	req.Highlight.AddField(fieldContents)

	res, err := i.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := make([]driven.Hit, 0, len(res.Hits))
	for _, match := range res.Hits {
		hits = append(hits, driven.Hit{
			Path:     match.ID,
			Score:    match.Score,
			Fragment: fragmentFor(match.Fragments, match.Fields),
		})
	}
	return hits, nil
}

// Close releases the store and its directory lock.
func (i *Index) Close() error {
	return i.idx.Close()
}

// fragmentFor picks the first highlighted contents fragment, falling
// back to a bounded prefix of the stored contents when the match did
// not touch the contents field.
func fragmentFor(fragments map[string][]string, fields map[string]interface{}) string {
	if frags := fragments[fieldContents]; len(frags) > 0 {
		return frags[0]
	}
	contents, ok := fields[fieldContents].(string)
	if !ok {
		return ""
	}
	return truncateToRune(contents, snippetMaxChars)
}

// truncateToRune cuts s at or before max bytes without splitting a
// multi-byte rune.
func truncateToRune(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

// Writer stages mutations in a bleve batch.
type Writer struct {
	idx   bleve.Index
	batch *bleve.Batch
}

// DeleteAll stages removal of every currently indexed document.
func (w *Writer) DeleteAll() error {
	count, err := w.idx.DocCount()
	if err != nil {
		return fmt.Errorf("count documents: %w", err)
	}
	if count == 0 {
		return nil
	}

	req := bleve.NewSearchRequestOptions(query.NewMatchAllQuery(), int(count), 0, false)
	res, err := w.idx.Search(req)
	if err != nil {
		return fmt.Errorf("enumerate documents: %w", err)
	}
	for _, match := range res.Hits {
		w.batch.Delete(match.ID)
	}
	return nil
}

// Add stages a document keyed by its path.
func (w *Writer) Add(doc domain.Document) error {
	return w.batch.Index(doc.Path, map[string]interface{}{
		fieldPath:     doc.Path,
		fieldContents: doc.Contents,
	})
}

// Commit applies the staged batch in one transaction.
func (w *Writer) Commit() error {
	return w.idx.Batch(w.batch)
}
