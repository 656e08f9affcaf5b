package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T, path string) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLiteStore(context.Background(), path)
	require.NoError(t, err)
	return s
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	s := openTestSQLite(t, filepath.Join(t.TempDir(), "kv.db"))
	t.Cleanup(func() { assert.NoError(t, s.Close()) })

	_, err := s.Get(context.Background(), "user_token")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_SetAndOverwrite(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t, filepath.Join(t.TempDir(), "kv.db"))
	t.Cleanup(func() { assert.NoError(t, s.Close()) })

	require.NoError(t, s.SetValues(ctx, map[string]string{"user_token": "first", "user_id": "3"}))
	require.NoError(t, s.SetValues(ctx, map[string]string{"user_token": "second"}))

	token, err := s.Get(ctx, "user_token")
	require.NoError(t, err)
	assert.Equal(t, "second", token)

	id, err := s.Get(ctx, "user_id")
	require.NoError(t, err)
	assert.Equal(t, "3", id)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	s := openTestSQLite(t, path)
	require.NoError(t, s.SetValues(ctx, map[string]string{"user_token": "persisted"}))
	require.NoError(t, s.Close())

	reopened := openTestSQLite(t, path)
	t.Cleanup(func() { assert.NoError(t, reopened.Close()) })

	token, err := reopened.Get(ctx, "user_token")
	require.NoError(t, err)
	assert.Equal(t, "persisted", token)
}

func TestOpenStore_Kinds(t *testing.T) {
	ctx := context.Background()

	mem, err := OpenStore(ctx, StoreConfig{Kind: StoreMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, mem)

	lite, err := OpenStore(ctx, StoreConfig{Kind: StoreSQLite, SQLitePath: filepath.Join(t.TempDir(), "kv.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, lite)
	assert.NoError(t, lite.Close())

	_, err = OpenStore(ctx, StoreConfig{Kind: "etcd"})
	assert.Error(t, err)

	_, err = OpenStore(ctx, StoreConfig{Kind: StorePostgres})
	assert.Error(t, err)

	_, err = OpenStore(ctx, StoreConfig{Kind: StoreRedis})
	assert.Error(t, err)
}
