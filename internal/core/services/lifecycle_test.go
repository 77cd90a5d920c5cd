package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	indexmem "github.com/scour-search/scour-cli/internal/adapters/driven/index/memory"
	storagemem "github.com/scour-search/scour-cli/internal/adapters/driven/storage/memory"
	"github.com/scour-search/scour-cli/internal/core/domain"
)

func TestInit_CreatesIndexAndConfig(t *testing.T) {
	root := t.TempDir()
	store := storagemem.NewConfigStore()
	provider := indexmem.NewProvider()
	svc := NewLifecycleService(store, provider, "/scour/index")

	res, err := svc.Init(context.Background(), root, false)

	require.NoError(t, err)
	assert.False(t, res.Reused)
	assert.Equal(t, "/scour/index", res.IndexDir)
	assert.True(t, provider.Exists("/scour/index"))

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, res.Root, cfg.Root)
	assert.Equal(t, "/scour/index", cfg.IndexDir)
	assert.Nil(t, cfg.LastIndexed)
}

func TestInit_ReusesCompatibleIndex(t *testing.T) {
	root := t.TempDir()
	store := storagemem.NewConfigStore()
	provider := indexmem.NewProvider()
	svc := NewLifecycleService(store, provider, "/scour/index")

	_, err := svc.Init(context.Background(), root, false)
	require.NoError(t, err)

	res, err := svc.Init(context.Background(), root, false)

	require.NoError(t, err)
	assert.True(t, res.Reused)
}

func TestInit_SchemaMismatchIsFatal(t *testing.T) {
	root := t.TempDir()
	store := storagemem.NewConfigStore()
	provider := indexmem.NewProvider()
	svc := NewLifecycleService(store, provider, "/scour/index")

	_, err := svc.Init(context.Background(), root, false)
	require.NoError(t, err)
	provider.SetSchemaMismatch("/scour/index")

	_, err = svc.Init(context.Background(), root, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaMismatch)
	assert.Contains(t, err.Error(), "--force")
}

func TestInit_ForceRecreatesMismatchedIndex(t *testing.T) {
	root := t.TempDir()
	store := storagemem.NewConfigStore()
	provider := indexmem.NewProvider()
	svc := NewLifecycleService(store, provider, "/scour/index")

	_, err := svc.Init(context.Background(), root, false)
	require.NoError(t, err)
	provider.SetSchemaMismatch("/scour/index")

	res, err := svc.Init(context.Background(), root, true)

	require.NoError(t, err)
	assert.False(t, res.Reused)

	idx, err := provider.Open("/scour/index")
	require.NoError(t, err)
	assert.NoError(t, idx.ValidateSchema())
}

func TestInit_MissingRoot(t *testing.T) {
	svc := NewLifecycleService(storagemem.NewConfigStore(), indexmem.NewProvider(), "/scour/index")

	_, err := svc.Init(context.Background(), filepath.Join(t.TempDir(), "nope"), false)

	assert.Error(t, err)
}

func TestInit_RootMustBeDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "afile.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0600))

	svc := NewLifecycleService(storagemem.NewConfigStore(), indexmem.NewProvider(), "/scour/index")

	_, err := svc.Init(context.Background(), filePath, false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestResolveRoot_Canonicalises(t *testing.T) {
	tmpDir := t.TempDir()

	resolved, err := ResolveRoot(tmpDir + string(filepath.Separator) + ".")

	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(resolved))
}
