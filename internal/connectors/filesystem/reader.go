package filesystem

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scour-search/scour-cli/internal/core/domain"
)

// Reader reads file contents incrementally under a hard byte ceiling.
type Reader struct {
	// MaxBytes is the ceiling. Exceeding it mid-read is a hard
	// failure for that file, never a silent truncation.
	MaxBytes int64
}

// NewReader returns a reader with the default ceiling, matching the
// classifier's size cap.
func NewReader() *Reader {
	return &Reader{MaxBytes: MaxFileSize}
}

// ReadBounded reads the whole file line by line, tracking a running
// byte total. It fails with domain.ErrFileTooLarge the moment the total
// or the stat-derived size hint exceeds the ceiling. The hint check
// guards against files that grew between stat and read.
func (r *Reader) ReadBounded(path string, sizeHint int64) (string, error) {
	if sizeHint > r.MaxBytes {
		return "", fmt.Errorf("read %s: %w (limit %d bytes)", path, domain.ErrFileTooLarge, r.MaxBytes)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var contents strings.Builder
	var total int64

	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			total += int64(len(line))
			if total > r.MaxBytes {
				return "", fmt.Errorf("read %s: %w (limit %d bytes)", path, domain.ErrFileTooLarge, r.MaxBytes)
			}
			contents.WriteString(line)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
	}

	return contents.String(), nil
}
