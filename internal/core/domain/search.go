package domain

// SearchResult is a single ranked hit, constructed per query and never
// persisted.
type SearchResult struct {
	// Rank is the 1-based position within this query execution.
	Rank int

	// Score is the engine relevance score. Scores are non-increasing
	// across rank order.
	Score float64

	// Path is the document path, rewritten relative to the configured
	// root when the document lives under it, absolute otherwise.
	Path string

	// Snippet is a bounded excerpt of the matched contents with
	// matched spans wrapped in <mark> tags. Translating the markers
	// into the output medium's emphasis convention is the caller's job.
	Snippet string
}
