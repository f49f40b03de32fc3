package kvstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/qrmenu/pkg/database"
	"github.com/shashiranjanraj/qrmenu/pkg/kvstore"
	"github.com/shashiranjanraj/qrmenu/pkg/storage"
)

// exercise runs the behaviour every driver must share.
func exercise(t *testing.T, s kvstore.Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "menus")
	require.NoError(t, err)
	assert.False(t, ok, "fresh store has no keys")

	require.NoError(t, s.Set(ctx, "menus", `[]`))
	v, ok, err := s.Get(ctx, "menus")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)

	require.NoError(t, s.Set(ctx, "menus", `[{"id":"1"}]`))
	v, _, err = s.Get(ctx, "menus")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, v, "second Set overwrites")

	require.NoError(t, s.Delete(ctx, "menus"))
	_, ok, err = s.Get(ctx, "menus")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Delete(ctx, "never-set"))
}

func TestMemoryStore(t *testing.T) {
	exercise(t, kvstore.NewMemory())
}

func TestSQLStore(t *testing.T) {
	db, err := database.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	defer database.Close(db)
	require.NoError(t, kvstore.Migrate(db))

	exercise(t, kvstore.NewSQL(db))
}

func TestDiskStore(t *testing.T) {
	disk, err := storage.NewLocal(t.TempDir(), "http://localhost/storage")
	require.NoError(t, err)

	s := kvstore.NewDisk(disk, "kv")
	exercise(t, s)
	assert.Equal(t, "disk:local", s.Driver())
}

func TestPrefixIsolatesKeys(t *testing.T) {
	ctx := context.Background()
	base := kvstore.NewMemory()
	a := kvstore.WithPrefix(base, "a:")
	b := kvstore.WithPrefix(base, "b:")

	require.NoError(t, a.Set(ctx, "themes", "A"))
	_, ok, err := b.Get(ctx, "themes")
	require.NoError(t, err)
	assert.False(t, ok)

	raw, ok, err := base.Get(ctx, "a:themes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "A", raw)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := kvstore.Open(ctx, kvstore.Options{Driver: "memory", Prefix: "qrmenu:"}, kvstore.Deps{})
	require.NoError(t, err)
	assert.Equal(t, "memory", s.Driver())
	exercise(t, s)

	_, err = kvstore.Open(ctx, kvstore.Options{Driver: "sql"}, kvstore.Deps{})
	assert.Error(t, err)

	_, err = kvstore.Open(ctx, kvstore.Options{Driver: "etcd"}, kvstore.Deps{})
	assert.Error(t, err)
}
