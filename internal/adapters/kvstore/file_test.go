package kvstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codify-lk/receipts_backend/internal/adapters/kvstore"
)

func TestFileStore_MissingFileReadsAsEmpty(t *testing.T) {
	store := kvstore.NewFileStore(filepath.Join(t.TempDir(), "data.json"))

	_, found, err := store.Get(context.Background(), "some-key")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStore_SetGetRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := kvstore.NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "receipts", `[{"id":"1"}]`))

	val, found, err := store.Get(ctx, "receipts")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"1"}]`, val)

	require.NoError(t, store.Remove(ctx, "receipts"))

	_, found, err = store.Get(ctx, "receipts")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.json")
	ctx := context.Background()

	first := kvstore.NewFileStore(path)
	require.NoError(t, first.Set(ctx, "k", "v"))

	second := kvstore.NewFileStore(path)
	val, found, err := second.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", val)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestMemoryStore_SetGetRemove(t *testing.T) {
	store := kvstore.NewMemoryStore()
	ctx := context.Background()

	_, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "k", "v"))

	val, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", val)

	require.NoError(t, store.Remove(ctx, "k"))

	_, found, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}
