// Package filesystem decides which local files are ingestible and reads
// their contents under a hard byte ceiling.
package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/scour-search/scour-cli/internal/core/domain"
)

const (
	// MaxFileSize is the ingestion ceiling in bytes. Files strictly
	// larger than this are skipped; the streaming reader enforces the
	// same ceiling again while reading.
	MaxFileSize = 5_000_000

	// SniffLen is the prefix length read to detect binary content.
	SniffLen = 4096
)

// textLikeExtensions lists the lowercase extensions (without the dot)
// accepted for ingestion: source code, markup, config, and plain text.
var textLikeExtensions = []string{
	"txt", "md", "rst", "log", "json", "toml", "yaml", "yml", "ini",
	"cfg", "rs", "lock", "c", "cpp", "h", "hpp", "cs", "java", "py",
	"go", "rb", "php", "js", "ts", "tsx", "jsx", "html", "htm", "css",
	"sh", "bash", "ps1", "bat", "tex", "csv",
}

// Classifier decides whether a filesystem entry should be ingested.
type Classifier struct {
	// Extensions is the lowercase extension allowlist.
	Extensions map[string]struct{}

	// MaxFileSize is the size ceiling in bytes.
	MaxFileSize int64

	// SniffLen is how many leading bytes the binary sniff reads.
	SniffLen int
}

// NewClassifier returns a classifier with the default allowlist and
// limits.
func NewClassifier() *Classifier {
	exts := make(map[string]struct{}, len(textLikeExtensions))
	for _, ext := range textLikeExtensions {
		exts[ext] = struct{}{}
	}
	return &Classifier{
		Extensions:  exts,
		MaxFileSize: MaxFileSize,
		SniffLen:    SniffLen,
	}
}

// Classify decides whether the file at path should be ingested.
// It returns domain.SkipNone for ingestible files, otherwise the skip
// reason. The error is non-nil only alongside SkipReason values that
// carry an I/O cause, and is informational: classification failures are
// never fatal to a pass.
//
// The size check uses the caller-supplied stat size so oversized files
// are rejected before any open. The binary sniff is an independent
// bounded read, so large binary files are rejected cheaply.
func (c *Classifier) Classify(path string, size int64) (domain.SkipReason, error) {
	if !c.AllowedExtension(path) {
		return domain.SkipUnsupportedExtension, nil
	}

	if size > c.MaxFileSize {
		return domain.SkipTooLarge, nil
	}

	binary, err := c.sniffBinary(path)
	if err != nil {
		return domain.SkipReadError, err
	}
	if binary {
		return domain.SkipBinaryContent, nil
	}

	return domain.SkipNone, nil
}

// AllowedExtension matches the file's extension, case-insensitively,
// against the allowlist. Files without an extension are excluded.
// It needs only the path, so callers can rule a file out before any
// filesystem access.
func (c *Classifier) AllowedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return false
	}
	_, ok := c.Extensions[ext]
	return ok
}

// sniffBinary reads up to SniffLen leading bytes and reports the file
// as binary when the sample contains a NUL byte or is not valid UTF-8.
func (c *Classifier) sniffBinary(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open %s for sniffing: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, c.SniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false, fmt.Errorf("sniff %s: %w", path, err)
	}
	sample := buf[:n]

	if bytes.IndexByte(sample, 0) >= 0 {
		return true, nil
	}
	if !utf8.Valid(sample) {
		return true, nil
	}
	return false, nil
}
