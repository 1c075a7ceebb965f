package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/meur/dexforge/internal/config"
	"github.com/meur/dexforge/internal/storage"
)

func TestBuild(t *testing.T) {
	cfg := config.DefaultConfig()

	a, err := Build(cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &storage.MemoryCache{}, a.Cache)
	assert.Equal(t, config.DefaultUpstreamURL, a.Client.BaseURL())
	assert.Equal(t, 52, a.Catalog.Paginator().TotalPages())
	assert.Equal(t, cfg.RequestTimeout, a.HTTP.Timeout)
}

func TestBuildSQLite(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.CacheDriver = storage.DriverSQLite
	cfg.CachePath = filepath.Join(t.TempDir(), "cache.db")

	a, err := Build(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &storage.Store{}, a.Cache)
	require.NoError(t, a.Close())
}

func TestBuildUnknownDriver(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.CacheDriver = "redis"

	_, err := Build(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestPurgeCache(t *testing.T) {
	ctx := context.Background()
	cfg := config.DefaultConfig()
	cfg.CacheDriver = storage.DriverSQLite
	cfg.CachePath = filepath.Join(t.TempDir(), "cache.db")

	core, logs := observer.New(zap.InfoLevel)
	a, err := Build(cfg, zap.New(core))
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Cache.Set(ctx, "live", []byte("x"), time.Hour))
	require.NoError(t, a.Cache.Set(ctx, "stale", []byte("y"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	require.NoError(t, a.PurgeCache(ctx))
	assert.Equal(t, 1, a.CacheEntries(ctx))

	entries := logs.FilterMessage("cache purged").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["removed"])
}

func TestPurgeCacheWithoutMaintainer(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.CacheDriver = storage.DriverNone

	a, err := Build(cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.PurgeCache(context.Background()))
	assert.Equal(t, -1, a.CacheEntries(context.Background()))
}
