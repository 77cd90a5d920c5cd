package services

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/scour-search/scour-cli/internal/connectors/filesystem"
	"github.com/scour-search/scour-cli/internal/core/domain"
	"github.com/scour-search/scour-cli/internal/core/ports/driven"
	"github.com/scour-search/scour-cli/internal/core/ports/driving"
	"github.com/scour-search/scour-cli/internal/logger"
)

// progressEvery is the indexed-file cadence for progress lines.
const progressEvery = 100

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// IngestService walks the configured root, classifies and reads each
// regular file, and rebuilds the index from scratch in one atomic
// commit. After a successful pass the index exactly reflects the
// current filesystem state of ingestible files.
type IngestService struct {
	configStore driven.ConfigStore
	provider    driven.IndexProvider
	classifier  *filesystem.Classifier
	reader      *filesystem.Reader
	out         io.Writer
}

// NewIngestService creates a new ingestion service. Progress lines are
// written to out at a fixed cadence.
func NewIngestService(configStore driven.ConfigStore, provider driven.IndexProvider, out io.Writer) *IngestService {
	return &IngestService{
		configStore: configStore,
		provider:    provider,
		classifier:  filesystem.NewClassifier(),
		reader:      filesystem.NewReader(),
		out:         out,
	}
}

// Ingest runs one full ingestion pass against the saved config.
func (s *IngestService) Ingest(_ context.Context) (*domain.IngestReport, error) {
	cfg, err := s.configStore.Load()
	if err != nil {
		return nil, err
	}

	if !s.provider.Exists(cfg.IndexDir) {
		return nil, fmt.Errorf("%w at %s: re-run `scour init` to recreate it", domain.ErrIndexMissing, cfg.IndexDir)
	}

	idx, err := s.provider.Open(cfg.IndexDir)
	if err != nil {
		return nil, fmt.Errorf("open index at %s: %w", cfg.IndexDir, err)
	}
	defer idx.Close()

	report, err := s.runPass(cfg.Root, idx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cfg.LastIndexed = &now
	if err := s.configStore.Save(cfg); err != nil {
		return nil, fmt.Errorf("save config: %w", err)
	}

	return report, nil
}

// runPass clears the index, walks root, and commits the rebuilt state.
// Per-file failures are counted and logged; only writer, walk-level,
// and commit failures abort the pass.
func (s *IngestService) runPass(root string, idx driven.Index) (*domain.IngestReport, error) {
	logger.Section("Ingestion Pass")
	logger.Info("Root: %s", root)

	writer, err := idx.Writer()
	if err != nil {
		return nil, fmt.Errorf("open index writer: %w", err)
	}

	if err := writer.DeleteAll(); err != nil {
		return nil, fmt.Errorf("clear existing index documents: %w", err)
	}

	report := &domain.IngestReport{}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("traversal error at %s: %v", path, err)
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		reason, size, cerr := s.classifyEntry(path, d)
		if reason != domain.SkipNone {
			if cerr != nil {
				logger.Warn("%s: %v", path, cerr)
			}
			logger.Skip(reason.String(), path)
			report.Skip(reason)
			return nil
		}

		contents, err := s.reader.ReadBounded(path, size)
		if err != nil {
			logger.Warn("read %s: %v", path, err)
			logger.Skip(domain.SkipReadError.String(), path)
			report.Skip(domain.SkipReadError)
			return nil
		}

		if err := writer.Add(domain.Document{Path: path, Contents: contents}); err != nil {
			return fmt.Errorf("add document %s: %w", path, err)
		}
		report.Indexed++

		if report.Indexed%progressEvery == 0 {
			fmt.Fprintf(s.out, "  Indexed %d files so far...\n", report.Indexed)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", root, walkErr)
	}

	if err := writer.Commit(); err != nil {
		return nil, fmt.Errorf("commit index: %w", err)
	}

	logger.Info("Pass complete: %d indexed, %d skipped", report.Indexed, report.TotalSkipped())
	return report, nil
}

// classifyEntry decides the skip reason for one walked regular file.
// The extension check needs only the name, so it runs before the stat:
// a non-allowlisted file that cannot be statted still counts as
// unsupported, not as a read error.
func (s *IngestService) classifyEntry(path string, d fs.DirEntry) (domain.SkipReason, int64, error) {
	if !s.classifier.AllowedExtension(path) {
		return domain.SkipUnsupportedExtension, 0, nil
	}

	info, err := d.Info()
	if err != nil {
		return domain.SkipReadError, 0, err
	}

	reason, cerr := s.classifier.Classify(path, info.Size())
	return reason, info.Size(), cerr
}
