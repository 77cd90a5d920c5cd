package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scour-search/scour-cli/internal/adapters/driven/config/file"
	bleveindex "github.com/scour-search/scour-cli/internal/adapters/driven/index/bleve"
	"github.com/scour-search/scour-cli/internal/core/domain"
)

// execute runs the root command with args and captures combined output.
// Flag state is reset first because the command tree is package-global.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	for _, c := range append(rootCmd.Commands(), rootCmd) {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			f.Changed = false
			_ = f.Value.Set(f.DefValue)
		})
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeCorpus(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"),
		[]byte("rust search tools are a joy to build"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "todo.md"),
		[]byte("ship the indexer, then write docs"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "blob.bin"),
		[]byte{0x00, 0x01, 0x02}, 0o600))
	return root
}

func TestCLI_InitIndexSearchFlow(t *testing.T) {
	t.Setenv("SCOUR_HOME", t.TempDir())
	root := writeCorpus(t)

	out, err := execute(t, "init", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized scour:")
	assert.Contains(t, out, "Created new index.")
	assert.Contains(t, out, "Indexing complete.")
	assert.Contains(t, out, "Indexed files : 2")
	assert.Contains(t, out, "Unsupported extension : 1")

	out, err = execute(t, "search", "rust")
	require.NoError(t, err)
	assert.Contains(t, out, "Results for query: rust")
	assert.Contains(t, out, "notes.txt")
	assert.Contains(t, out, "[score: ")
	assert.Contains(t, out, "\x1b[1m", "matched terms should be bolded")

	out, err = execute(t, "index")
	require.NoError(t, err)
	assert.Contains(t, out, "Indexing complete.")
	assert.Contains(t, out, "Indexed files : 2")
}

func TestCLI_SearchNoMatches(t *testing.T) {
	t.Setenv("SCOUR_HOME", t.TempDir())
	root := writeCorpus(t)

	_, err := execute(t, "init", "--root", root)
	require.NoError(t, err)

	out, err := execute(t, "search", "zanzibar")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found for query: zanzibar")
}

func TestCLI_SearchBeforeInit(t *testing.T) {
	t.Setenv("SCOUR_HOME", t.TempDir())

	_, err := execute(t, "search", "anything")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotInitialized)
}

func TestCLI_SearchBeforeFirstPass(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SCOUR_HOME", home)
	root := t.TempDir()

	// Config and index exist but no ingestion pass has run.
	store, err := file.NewConfigStore(home)
	require.NoError(t, err)
	indexDir := file.DefaultIndexDir(home)
	require.NoError(t, store.Save(&domain.AppConfig{Root: root, IndexDir: indexDir}))
	idx, err := bleveindex.NewProvider().Create(indexDir)
	require.NoError(t, err)
	require.NoError(t, idx.Close())

	out, err := execute(t, "search", "anything")
	require.NoError(t, err, "an unbuilt index is informational, not a failure")
	assert.Contains(t, out, domain.ErrNeverIndexed.Error())
}

func TestCLI_InvalidQueryIsAnError(t *testing.T) {
	t.Setenv("SCOUR_HOME", t.TempDir())
	root := writeCorpus(t)

	_, err := execute(t, "init", "--root", root)
	require.NoError(t, err)

	_, err = execute(t, "search", `contents:"unterminated`)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)
}

func TestCLI_InitRequiresRoot(t *testing.T) {
	t.Setenv("SCOUR_HOME", t.TempDir())

	_, err := execute(t, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root")
}

func TestCLI_SearchRequiresExactlyOneArg(t *testing.T) {
	_, err := execute(t, "search")
	require.Error(t, err)

	_, err = execute(t, "search", "two", "terms")
	require.Error(t, err)
}

func TestCLI_Version(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "scour version")
}
