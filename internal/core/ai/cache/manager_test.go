package cache

import (
	"context"
	"testing"
	"time"

	"mealplan-generator/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cacheConfig(maxSize int, ttl time.Duration) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			Backend:         "memory",
			MaxSize:         maxSize,
			TTL:             ttl,
			CleanupInterval: time.Minute,
		},
	}
}

func TestManagerRoundTrip(t *testing.T) {
	m := NewManager(cacheConfig(10, time.Hour))
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()

	_, err := m.Get(ctx, "prompt", "image")
	assert.Error(t, err)

	require.NoError(t, m.Set(ctx, "prompt", "image", "response"))

	got, err := m.Get(ctx, "prompt", "image")
	require.NoError(t, err)
	assert.Equal(t, "response", got)

	// 不同圖片是不同鍵
	_, err = m.Get(ctx, "prompt", "other-image")
	assert.Error(t, err)
}

func TestManagerExpiry(t *testing.T) {
	m := NewManager(cacheConfig(10, 10*time.Millisecond))
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "prompt", "", "response"))

	time.Sleep(25 * time.Millisecond)

	_, err := m.Get(ctx, "prompt", "")
	assert.Error(t, err)
}

func TestManagerLRUEviction(t *testing.T) {
	m := NewManager(cacheConfig(2, time.Hour))
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "a", "", "va"))
	require.NoError(t, m.Set(ctx, "b", "", "vb"))

	// 命中 a 提高其存活權重
	_, err := m.Get(ctx, "a", "")
	require.NoError(t, err)

	// 超出容量時淘汰最少使用的 b
	require.NoError(t, m.Set(ctx, "c", "", "vc"))

	_, err = m.Get(ctx, "b", "")
	assert.Error(t, err)

	got, err := m.Get(ctx, "a", "")
	require.NoError(t, err)
	assert.Equal(t, "va", got)

	got, err = m.Get(ctx, "c", "")
	require.NoError(t, err)
	assert.Equal(t, "vc", got)
}

func TestManagerDisabled(t *testing.T) {
	cfg := cacheConfig(10, time.Hour)
	cfg.Cache.Enabled = false
	assert.Nil(t, NewManager(cfg))
}

func TestManagerStats(t *testing.T) {
	m := NewManager(cacheConfig(10, time.Hour))
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	_ = m.Set(ctx, "a", "", "va")
	_, _ = m.Get(ctx, "a", "")
	_, _ = m.Get(ctx, "missing", "")

	stats := m.GetStats()
	assert.Equal(t, 1, stats["size"])
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
}
