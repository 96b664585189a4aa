package session

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfeidau/devmarket/internal/models"
)

func newTestRedisKV(t *testing.T) *RedisKV {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping redis integration test")
	}

	prefix := "devmarket:test:" + uuid.NewString() + ":"
	kv, err := NewRedisKV(context.Background(), addr, os.Getenv("REDIS_PASSWORD"), prefix)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = kv.Delete(context.Background(), KeyAccessToken, KeyUser, KeyLoginTimestamp, "a", "b")
		_ = kv.Close()
	})
	return kv
}

func TestRedisKV(t *testing.T) {
	kv := newTestRedisKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, map[string]string{"a": "1", "b": "2"}))

	values, err := kv.Get(ctx, "a", "b", "missing")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, values)

	require.NoError(t, kv.Delete(ctx, "a"))
	values, err = kv.Get(ctx, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"b": "2"}, values)
}

func TestStoreWithRedisKV(t *testing.T) {
	kv := newTestRedisKV(t)
	ctx := context.Background()

	first := NewStore(kv)
	require.NoError(t, first.Set(ctx, models.Identity{ID: 3, Role: models.RoleAdmin}, "tok"))

	second := NewStore(kv)
	second.Restore(ctx)
	assert.True(t, second.IsAuthenticated())

	require.NoError(t, second.Clear(ctx))
	values, err := kv.Get(ctx, KeyAccessToken, KeyUser, KeyLoginTimestamp)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestNewRedisKVUnreachable(t *testing.T) {
	_, err := NewRedisKV(context.Background(), "127.0.0.1:1", "", "")
	require.Error(t, err)
}
