package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/qrmenu/pkg/storage"
)

func TestLocalDiskRoundTrip(t *testing.T) {
	ctx := context.Background()
	disk, err := storage.NewLocal(t.TempDir(), "http://cdn.test/storage/")
	require.NoError(t, err)

	ok, err := disk.Exists(ctx, "uploads/logo.png")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = disk.Get(ctx, "uploads/logo.png")
	assert.True(t, errors.Is(err, storage.ErrNotExist))

	require.NoError(t, disk.Put(ctx, "uploads/logo.png", []byte("png")))
	data, err := disk.Get(ctx, "uploads/logo.png")
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	assert.Equal(t, "http://cdn.test/storage/uploads/logo.png", disk.URL("uploads/logo.png"))

	require.NoError(t, disk.Delete(ctx, "uploads/logo.png"))
	require.NoError(t, disk.Delete(ctx, "uploads/logo.png"))
	ok, err = disk.Exists(ctx, "uploads/logo.png")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalDiskStaysUnderRoot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	disk, err := storage.NewLocal(root, "http://cdn.test")
	require.NoError(t, err)

	require.NoError(t, disk.Put(ctx, "../../escape.txt", []byte("x")))
	data, err := disk.Get(ctx, "escape.txt")
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestOpenUnknownDisk(t *testing.T) {
	_, err := storage.Open(context.Background(), "ftp")
	assert.Error(t, err)
}
