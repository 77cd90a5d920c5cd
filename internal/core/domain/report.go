package domain

// SkipReason classifies why a walked file was excluded from indexing.
// Every file seen by an ingestion pass is either indexed or assigned
// exactly one skip reason.
type SkipReason int

const (
	// SkipNone marks a file as ingestible.
	SkipNone SkipReason = iota

	// SkipUnsupportedExtension marks a file whose extension is not on
	// the text-like allowlist (or which has no extension at all).
	SkipUnsupportedExtension

	// SkipTooLarge marks a file over the size ceiling.
	SkipTooLarge

	// SkipBinaryContent marks a file whose sniffed prefix looks binary.
	SkipBinaryContent

	// SkipReadError marks a file that failed metadata, sniff, or
	// content reads.
	SkipReadError
)

// String returns a human-readable label for the skip reason.
func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "none"
	case SkipUnsupportedExtension:
		return "unsupported extension"
	case SkipTooLarge:
		return "too large"
	case SkipBinaryContent:
		return "binary content"
	case SkipReadError:
		return "read error"
	default:
		return "unknown"
	}
}

// IngestReport tallies the outcome of one ingestion pass.
// Counters are pass-scoped and never persisted.
type IngestReport struct {
	// Indexed counts files submitted to the index.
	Indexed int

	// UnsupportedExtension counts SkipUnsupportedExtension files.
	UnsupportedExtension int

	// TooLarge counts SkipTooLarge files.
	TooLarge int

	// BinaryContent counts SkipBinaryContent files.
	BinaryContent int

	// ReadErrors counts SkipReadError files.
	ReadErrors int
}

// Skip increments the counter for the given reason.
// SkipNone is not a valid argument; it is ignored.
func (r *IngestReport) Skip(reason SkipReason) {
	switch reason {
	case SkipUnsupportedExtension:
		r.UnsupportedExtension++
	case SkipTooLarge:
		r.TooLarge++
	case SkipBinaryContent:
		r.BinaryContent++
	case SkipReadError:
		r.ReadErrors++
	}
}

// TotalSkipped returns the number of files excluded for any reason.
func (r *IngestReport) TotalSkipped() int {
	return r.UnsupportedExtension + r.TooLarge + r.BinaryContent + r.ReadErrors
}
