package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileKV(t *testing.T) {
	t.Run("creates directory with correct permissions", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "session")

		kv, err := NewFileKV(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "session.json"), kv.Path())

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
	})
}

func TestFileKV(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file reads empty", func(t *testing.T) {
		kv, err := NewFileKV(t.TempDir())
		require.NoError(t, err)

		values, err := kv.Get(ctx, KeyAccessToken)
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("set get delete", func(t *testing.T) {
		kv, err := NewFileKV(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, kv.Set(ctx, map[string]string{"a": "1", "b": "2"}))

		info, err := os.Stat(kv.Path())
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

		values, err := kv.Get(ctx, "a", "b", "c")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"a": "1", "b": "2"}, values)

		require.NoError(t, kv.Delete(ctx, "a", "c"))
		values, err = kv.Get(ctx, "a", "b")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"b": "2"}, values)
	})

	t.Run("values are shared between instances", func(t *testing.T) {
		dir := t.TempDir()
		first, err := NewFileKV(dir)
		require.NoError(t, err)
		require.NoError(t, first.Set(ctx, map[string]string{KeyAccessToken: "tok"}))

		second, err := NewFileKV(dir)
		require.NoError(t, err)
		values, err := second.Get(ctx, KeyAccessToken)
		require.NoError(t, err)
		assert.Equal(t, "tok", values[KeyAccessToken])
	})

	t.Run("corrupt file is reported then replaced", func(t *testing.T) {
		kv, err := NewFileKV(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(kv.Path(), []byte("{garbage"), 0600))

		_, err = kv.Get(ctx, KeyAccessToken)
		require.Error(t, err)

		require.NoError(t, kv.Set(ctx, map[string]string{KeyAccessToken: "tok"}))
		values, err := kv.Get(ctx, KeyAccessToken)
		require.NoError(t, err)
		assert.Equal(t, "tok", values[KeyAccessToken])
	})

	t.Run("no temp files left behind", func(t *testing.T) {
		dir := t.TempDir()
		kv, err := NewFileKV(dir)
		require.NoError(t, err)
		require.NoError(t, kv.Set(ctx, map[string]string{"a": "1"}))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "session.json", entries[0].Name())
	})
}

func TestStoreWithFileKV(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	require.NoError(t, err)

	store := NewStore(kv)
	store.Restore(context.Background())
	assert.False(t, store.IsAuthenticated())
}
