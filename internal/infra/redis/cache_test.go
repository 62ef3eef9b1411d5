package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	// Create an in-memory Redis instance for testing
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return NewCache(client, zap.NewNop(), "tour-catalog"), mr
}

func TestCache_SetAndGet(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	err := cache.Set(ctx, "search:kerala", []byte(`{"total":3}`), time.Minute)
	require.NoError(t, err)

	data, err := cache.Get(ctx, "search:kerala")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"total":3}`), data)
}

func TestCache_Get_Miss(t *testing.T) {
	cache, _ := setupTestCache(t)

	data, err := cache.Get(context.Background(), "search:missing")
	require.NoError(t, err)
	assert.Nil(t, data, "Miss should return nil, not an error")
}

func TestCache_KeysAreNamespaced(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	err := cache.Set(ctx, "search:kerala", []byte("x"), time.Minute)
	require.NoError(t, err)

	assert.True(t, mr.Exists("tour-catalog:search:kerala"),
		"Stored key should carry the prefix")
	assert.False(t, mr.Exists("search:kerala"),
		"Unprefixed key should not exist")
}

func TestCache_Delete(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "search:kerala", []byte("x"), time.Minute))
	require.NoError(t, cache.Delete(ctx, "search:kerala"))

	data, err := cache.Get(ctx, "search:kerala")
	require.NoError(t, err)
	assert.Nil(t, data)

	// Deleting a missing key is a no-op
	assert.NoError(t, cache.Delete(ctx, "search:kerala"))
}

func TestCache_Clear_OnlyDropsOwnPrefix(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "search:kerala", []byte("a"), time.Minute))
	require.NoError(t, cache.Set(ctx, "search:goa", []byte("b"), time.Minute))

	// A key owned by some other application
	require.NoError(t, mr.Set("other-app:search:kerala", "c"))

	require.NoError(t, cache.Clear(ctx))

	data, err := cache.Get(ctx, "search:kerala")
	require.NoError(t, err)
	assert.Nil(t, data)

	assert.True(t, mr.Exists("other-app:search:kerala"),
		"Clear should not touch foreign prefixes")
}

func TestCache_TTLExpiry(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "search:kerala", []byte("x"), time.Second))

	mr.FastForward(2 * time.Second)

	data, err := cache.Get(ctx, "search:kerala")
	require.NoError(t, err)
	assert.Nil(t, data, "Expired entry should read as a miss")
}
