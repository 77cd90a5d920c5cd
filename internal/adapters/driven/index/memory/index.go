// Package memory is an in-memory implementation of the index ports.
// It mimics the real engine closely enough for service and CLI tests:
// term-frequency scoring, <mark> highlight fragments, staged writes
// applied atomically on commit, and a schema-mismatch hook.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/scour-search/scour-cli/internal/core/domain"
	"github.com/scour-search/scour-cli/internal/core/ports/driven"
)

// fragmentMaxChars bounds generated fragments, matching the real
// engine's fragmenter.
const fragmentMaxChars = 200

// Ensure the fake implements the ports.
var (
	_ driven.IndexProvider = (*Provider)(nil)
	_ driven.Index         = (*Index)(nil)
	_ driven.IndexWriter   = (*Writer)(nil)
)

// store is the persisted state behind one index directory.
type store struct {
	mu             sync.RWMutex
	docs           map[string]string // path -> contents
	schemaMismatch bool
}

// Provider is an in-memory implementation of driven.IndexProvider,
// keyed by directory path.
type Provider struct {
	mu     sync.Mutex
	stores map[string]*store
}

// NewProvider creates a new in-memory index provider.
func NewProvider() *Provider {
	return &Provider{stores: make(map[string]*store)}
}

// Exists reports whether an index was created at dir.
func (p *Provider) Exists(dir string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.stores[dir]
	return ok
}

// Create builds a fresh, empty index at dir.
func (p *Provider) Create(dir string) (driven.Index, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.stores[dir]; ok {
		return nil, fmt.Errorf("index already exists at %s", dir)
	}
	st := &store{docs: make(map[string]string)}
	p.stores[dir] = st
	return &Index{st: st}, nil
}

// Open opens an existing index at dir.
func (p *Provider) Open(dir string) (driven.Index, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	st, ok := p.stores[dir]
	if !ok {
		return nil, fmt.Errorf("no index at %s", dir)
	}
	return &Index{st: st}, nil
}

// Remove deletes the index at dir.
func (p *Provider) Remove(dir string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.stores, dir)
	return nil
}

// SetSchemaMismatch marks the index at dir as carrying an unexpected
// persisted schema. Test hook.
func (p *Provider) SetSchemaMismatch(dir string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if st, ok := p.stores[dir]; ok {
		st.schemaMismatch = true
	}
}

// Index is an opened in-memory index.
type Index struct {
	st *store
}

// ValidateSchema honours the provider's schema-mismatch hook.
func (i *Index) ValidateSchema() error {
	i.st.mu.RLock()
	defer i.st.mu.RUnlock()
	if i.st.schemaMismatch {
		return domain.ErrSchemaMismatch
	}
	return nil
}

// DocCount returns the number of committed documents.
func (i *Index) DocCount() (uint64, error) {
	i.st.mu.RLock()
	defer i.st.mu.RUnlock()
	return uint64(len(i.st.docs)), nil
}

// Writer returns a staged writer over this index.
func (i *Index) Writer() (driven.IndexWriter, error) {
	return &Writer{st: i.st}, nil
}

// Search scores documents by term frequency across contents and path.
// Queries with unbalanced double quotes fail to parse, mimicking the
// real grammar's strictness.
func (i *Index) Search(_ context.Context, query string, limit int) ([]driven.Hit, error) {
	terms, err := parseQuery(query)
	if err != nil {
		return nil, err
	}

	i.st.mu.RLock()
	defer i.st.mu.RUnlock()

	type scored struct {
		path  string
		score float64
	}
	var matches []scored
	for path, contents := range i.st.docs {
		score := 0.0
		haystack := strings.ToLower(contents)
		pathLower := strings.ToLower(path)
		for _, term := range terms {
			score += float64(strings.Count(haystack, term))
			score += float64(strings.Count(pathLower, term))
		}
		if score > 0 {
			matches = append(matches, scored{path: path, score: score})
		}
	}

	// Descending score; stable path order for ties.
	sort.Slice(matches, func(a, b int) bool {
		if matches[a].score != matches[b].score {
			return matches[a].score > matches[b].score
		}
		return matches[a].path < matches[b].path
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	hits := make([]driven.Hit, 0, len(matches))
	for _, m := range matches {
		hits = append(hits, driven.Hit{
			Path:     m.path,
			Score:    m.score,
			Fragment: highlight(i.st.docs[m.path], terms),
		})
	}
	return hits, nil
}

// Close is a no-op for the in-memory index.
func (i *Index) Close() error {
	return nil
}

// Writer stages mutations and applies them atomically on Commit.
type Writer struct {
	mu        sync.Mutex
	st        *store
	staged    []domain.Document
	deleteAll bool
}

// DeleteAll stages removal of every committed document.
func (w *Writer) DeleteAll() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.deleteAll = true
	return nil
}

// Add stages a document.
func (w *Writer) Add(doc domain.Document) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.staged = append(w.staged, doc)
	return nil
}

// Commit applies the staged mutations in one step.
func (w *Writer) Commit() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.st.mu.Lock()
	defer w.st.mu.Unlock()

	if w.deleteAll {
		w.st.docs = make(map[string]string, len(w.staged))
	}
	for _, doc := range w.staged {
		w.st.docs[doc.Path] = doc.Contents
	}
	w.staged = nil
	w.deleteAll = false
	return nil
}

// parseQuery lowercases and splits the query, stripping quote marks.
// An odd number of double quotes is a parse error.
func parseQuery(query string) ([]string, error) {
	if strings.Count(query, `"`)%2 != 0 {
		return nil, fmt.Errorf("%w %q: unbalanced quotes", domain.ErrInvalidQuery, query)
	}
	cleaned := strings.ReplaceAll(strings.ToLower(query), `"`, " ")
	terms := strings.Fields(cleaned)
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w %q: empty query", domain.ErrInvalidQuery, query)
	}
	return terms, nil
}

// highlight returns a bounded window around the first matched term with
// every in-window occurrence wrapped in <mark> tags.
func highlight(contents string, terms []string) string {
	lower := strings.ToLower(contents)

	start := -1
	for _, term := range terms {
		if at := strings.Index(lower, term); at >= 0 && (start == -1 || at < start) {
			start = at
		}
	}
	if start == -1 {
		// Path-only match: plain prefix, like the real fallback.
		if len(contents) > fragmentMaxChars {
			return contents[:runeBoundary(contents, fragmentMaxChars)]
		}
		return contents
	}

	// Centre-ish window around the first match, snapped to rune
	// boundaries at both ends.
	from := start - fragmentMaxChars/4
	if from < 0 {
		from = 0
	}
	for from < len(contents) && !utf8.RuneStart(contents[from]) {
		from++
	}
	to := from + fragmentMaxChars
	if to > len(contents) {
		to = len(contents)
	}
	to = runeBoundary(contents, to)
	window := contents[from:to]

	for _, term := range terms {
		window = markTerm(window, term)
	}
	return window
}

// runeBoundary moves at backward to the nearest rune start in s.
func runeBoundary(s string, at int) int {
	for at > 0 && at < len(s) && !utf8.RuneStart(s[at]) {
		at--
	}
	return at
}

// markTerm wraps case-insensitive occurrences of term in <mark> tags.
func markTerm(window, term string) string {
	var b strings.Builder
	lower := strings.ToLower(window)
	for {
		at := strings.Index(lower, term)
		if at < 0 {
			b.WriteString(window)
			return b.String()
		}
		b.WriteString(window[:at])
		b.WriteString("<mark>")
		b.WriteString(window[at : at+len(term)])
		b.WriteString("</mark>")
		window = window[at+len(term):]
		lower = lower[at+len(term):]
	}
}
