package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/trainer-workload/internal/config"
)

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestCache(t)

	err := cache.Set("workload:trainer.jane:2024:3", 12, time.Minute)
	require.NoError(t, err)

	var hours int
	found, err := cache.Get("workload:trainer.jane:2024:3", &hours)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 12, hours)
}

func TestGetNotFound(t *testing.T) {
	cache := setupTestCache(t)

	var hours int
	found, err := cache.Get("workload:unknown:2024:1", &hours)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache := setupTestCache(t)

	err := cache.Set("workload:trainer.jane:2024:3", 7, time.Minute)
	require.NoError(t, err)

	err = cache.Invalidate("workload:trainer.jane:2024:3")
	require.NoError(t, err)

	var hours int
	found, err := cache.Get("workload:trainer.jane:2024:3", &hours)
	require.NoError(t, err)
	assert.False(t, found)
}
