package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenka/payments/internal/config"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, Cache) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewFromClient(client, "payments")
}

func TestRedisCache_SetGet(t *testing.T) {
	mr, c := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "token", "abc", time.Minute))

	val, err := c.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", val)

	mr.FastForward(2 * time.Minute)

	val, err = c.Get(ctx, "token")
	require.NoError(t, err)
	assert.Empty(t, val, "expired key should read as empty")
}

func TestRedisCache_GetMissing(t *testing.T) {
	_, c := setupMiniredis(t)

	val, err := c.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestRedisCache_GetError(t *testing.T) {
	mr, c := setupMiniredis(t)
	mr.Close()

	_, err := c.Get(context.Background(), "token")
	assert.Error(t, err)
}

func TestRedisCache_GenerateKey(t *testing.T) {
	_, c := setupMiniredis(t)
	assert.Equal(t, "payments:daraja-token:174379", c.GenerateKey("daraja-token", "174379"))
}

func TestNewRedisCache(t *testing.T) {
	t.Run("connects", func(t *testing.T) {
		mr := miniredis.RunT(t)

		c, closeFn, err := NewRedisCache(context.Background(), config.RedisConfig{Addr: mr.Addr(), KeyPrefix: "p"})
		require.NoError(t, err)
		defer closeFn()

		assert.Equal(t, "p:op:k", c.GenerateKey("op", "k"))
	})

	t.Run("unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, _, err := NewRedisCache(context.Background(), config.RedisConfig{Addr: addr})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to ping redis")
	})
}
