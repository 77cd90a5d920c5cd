package services

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	indexmem "github.com/scour-search/scour-cli/internal/adapters/driven/index/memory"
	storagemem "github.com/scour-search/scour-cli/internal/adapters/driven/storage/memory"
	"github.com/scour-search/scour-cli/internal/core/domain"
	"github.com/scour-search/scour-cli/internal/core/ports/driven"
)

// ingestFixture wires an initialised install around a temp root.
type ingestFixture struct {
	root     string
	store    *storagemem.ConfigStore
	provider *indexmem.Provider
	ingest   *IngestService
	out      *bytes.Buffer
}

func newIngestFixture(t *testing.T) *ingestFixture {
	t.Helper()
	root := t.TempDir()

	store := storagemem.NewConfigStore()
	provider := indexmem.NewProvider()

	idx, err := provider.Create("/scour/index")
	require.NoError(t, err)
	require.NoError(t, idx.Close())
	require.NoError(t, store.Save(&domain.AppConfig{Root: root, IndexDir: "/scour/index"}))

	out := new(bytes.Buffer)
	return &ingestFixture{
		root:     root,
		store:    store,
		provider: provider,
		ingest:   NewIngestService(store, provider, out),
		out:      out,
	}
}

func (f *ingestFixture) write(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(f.root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func (f *ingestFixture) docCount(t *testing.T) uint64 {
	t.Helper()
	idx, err := f.provider.Open("/scour/index")
	require.NoError(t, err)
	count, err := idx.DocCount()
	require.NoError(t, err)
	return count
}

func (f *ingestFixture) search(t *testing.T, query string) []driven.Hit {
	t.Helper()
	idx, err := f.provider.Open("/scour/index")
	require.NoError(t, err)
	hits, err := idx.Search(context.Background(), query, 20)
	require.NoError(t, err)
	return hits
}

func TestIngest_IndexesTextFiles(t *testing.T) {
	f := newIngestFixture(t)
	f.write(t, "notes.txt", []byte("rust search tools"))
	f.write(t, "todo.md", []byte("build fast indexer"))
	f.write(t, "sub/deep.go", []byte("package main"))

	report, err := f.ingest.Ingest(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, report.Indexed)
	assert.Zero(t, report.TotalSkipped())
	assert.Equal(t, uint64(3), f.docCount(t))
}

func TestIngest_SkipTaxonomy(t *testing.T) {
	f := newIngestFixture(t)
	f.write(t, "keep.txt", []byte("kept"))
	f.write(t, "noext", []byte("no extension"))
	f.write(t, "binary.txt", []byte{'a', 0x00, 'b'})
	f.write(t, "huge.txt", bytes.Repeat([]byte("x"), 5_000_001))

	report, err := f.ingest.Ingest(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Indexed)
	assert.Equal(t, 1, report.UnsupportedExtension)
	assert.Equal(t, 1, report.BinaryContent)
	assert.Equal(t, 1, report.TooLarge)
	assert.Zero(t, report.ReadErrors)

	// Every walked file is either indexed or assigned one skip reason.
	assert.Equal(t, 4, report.Indexed+report.TotalSkipped())
}

func TestIngest_SizeBoundaryExactCeilingIncluded(t *testing.T) {
	f := newIngestFixture(t)
	f.write(t, "boundary.txt", bytes.Repeat([]byte("y"), 5_000_000))

	report, err := f.ingest.Ingest(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Indexed)
	assert.Zero(t, report.TooLarge)
}

func TestIngest_Idempotent(t *testing.T) {
	f := newIngestFixture(t)
	f.write(t, "notes.txt", []byte("rust search tools"))
	f.write(t, "todo.md", []byte("build fast indexer"))

	first, err := f.ingest.Ingest(context.Background())
	require.NoError(t, err)
	firstHits := f.search(t, "rust")

	second, err := f.ingest.Ingest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Indexed, second.Indexed)
	assert.Equal(t, uint64(2), f.docCount(t))
	assert.Equal(t, firstHits, f.search(t, "rust"))
}

func TestIngest_DeletionReflects(t *testing.T) {
	f := newIngestFixture(t)
	doomed := f.write(t, "doomed.txt", []byte("ephemeral contents"))
	f.write(t, "stays.txt", []byte("permanent contents"))

	_, err := f.ingest.Ingest(context.Background())
	require.NoError(t, err)
	require.Len(t, f.search(t, "ephemeral"), 1)

	require.NoError(t, os.Remove(doomed))
	_, err = f.ingest.Ingest(context.Background())
	require.NoError(t, err)

	assert.Empty(t, f.search(t, "ephemeral"))
	assert.Equal(t, uint64(1), f.docCount(t))
}

func TestIngest_AdditionWithoutDuplication(t *testing.T) {
	f := newIngestFixture(t)
	f.write(t, "notes.txt", []byte("rust search tools"))

	_, err := f.ingest.Ingest(context.Background())
	require.NoError(t, err)

	f.write(t, "updates.txt", []byte("integration test covers indexing"))
	report, err := f.ingest.Ingest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Indexed)
	assert.Len(t, f.search(t, "integration"), 1)
	assert.Len(t, f.search(t, "rust"), 1)
}

func TestIngest_UpdatesLastIndexed(t *testing.T) {
	f := newIngestFixture(t)
	f.write(t, "notes.txt", []byte("anything"))

	cfg, err := f.store.Load()
	require.NoError(t, err)
	require.Nil(t, cfg.LastIndexed)

	_, err = f.ingest.Ingest(context.Background())
	require.NoError(t, err)

	cfg, err = f.store.Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg.LastIndexed)
}

func TestIngest_ProgressCadence(t *testing.T) {
	f := newIngestFixture(t)
	for i := 0; i < 205; i++ {
		f.write(t, filepath.Join("many", filenameFor(i)), []byte("filler words"))
	}

	_, err := f.ingest.Ingest(context.Background())

	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "Indexed 100 files so far...")
	assert.Contains(t, f.out.String(), "Indexed 200 files so far...")
	assert.NotContains(t, f.out.String(), "Indexed 205 files")
}

func filenameFor(i int) string {
	return "f" + string(rune('a'+i/26/26%26)) + string(rune('a'+i/26%26)) + string(rune('a'+i%26)) + ".txt"
}

// unstattableEntry is a directory entry whose metadata read fails.
type unstattableEntry struct{ name string }

func (e unstattableEntry) Name() string               { return e.name }
func (e unstattableEntry) IsDir() bool                { return false }
func (e unstattableEntry) Type() fs.FileMode          { return 0 }
func (e unstattableEntry) Info() (fs.FileInfo, error) { return nil, errors.New("stat failed") }

func TestClassifyEntry_ExtensionRuledOutBeforeStat(t *testing.T) {
	f := newIngestFixture(t)

	// A non-allowlisted file counts as unsupported even when it cannot
	// be statted.
	reason, _, err := f.ingest.classifyEntry("/r/archive.zip", unstattableEntry{"archive.zip"})
	require.NoError(t, err)
	assert.Equal(t, domain.SkipUnsupportedExtension, reason)

	// An allowlisted file that cannot be statted is a read error.
	reason, _, err = f.ingest.classifyEntry("/r/notes.txt", unstattableEntry{"notes.txt"})
	require.Error(t, err)
	assert.Equal(t, domain.SkipReadError, reason)
}

func TestIngest_MissingIndexIsFatal(t *testing.T) {
	f := newIngestFixture(t)
	require.NoError(t, f.provider.Remove("/scour/index"))

	_, err := f.ingest.Ingest(context.Background())

	assert.ErrorIs(t, err, domain.ErrIndexMissing)
}

func TestIngest_NotInitialized(t *testing.T) {
	svc := NewIngestService(storagemem.NewConfigStore(), indexmem.NewProvider(), new(bytes.Buffer))

	_, err := svc.Ingest(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotInitialized)
}
