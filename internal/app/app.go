// Package app wires configuration into the cache, upstream client and catalog.
package app

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/meur/dexforge/internal/catalog"
	"github.com/meur/dexforge/internal/config"
	"github.com/meur/dexforge/internal/dex"
	"github.com/meur/dexforge/internal/pokeapi"
	"github.com/meur/dexforge/internal/storage"
)

// App holds the long-lived dependencies shared by the binaries
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Cache   storage.Cache
	Client  *pokeapi.Client
	Catalog *catalog.Service
	HTTP    *http.Client
}

// Build opens the cache and creates the upstream client and catalog
func Build(cfg *config.Config, logger *zap.Logger) (*App, error) {
	cache, err := storage.Open(cfg.CacheDriver, cfg.CachePath)
	if err != nil {
		return nil, fmt.Errorf("opening %s cache: %w", cfg.CacheDriver, err)
	}

	hc := &http.Client{Timeout: cfg.RequestTimeout}
	client := pokeapi.New(cfg.UpstreamURL,
		pokeapi.WithHTTPClient(hc),
		pokeapi.WithCache(cache, cfg.CacheTTL),
		pokeapi.WithLogger(logger.Named("pokeapi")),
		pokeapi.WithConcurrency(cfg.PageSize),
	)

	pager := dex.NewPaginator(cfg.PageSize, cfg.TotalItems)
	svc := catalog.New(client, pager, cfg.SpriteBaseURL, logger.Named("catalog"))

	return &App{
		Config:  cfg,
		Logger:  logger,
		Cache:   cache,
		Client:  client,
		Catalog: svc,
		HTTP:    hc,
	}, nil
}

// PurgeCache drops expired cache entries and logs what is left. Caches
// without expiry bookkeeping are skipped.
func (a *App) PurgeCache(ctx context.Context) error {
	m, ok := a.Cache.(storage.Maintainer)
	if !ok {
		return nil
	}
	removed, err := m.Purge(ctx)
	if err != nil {
		return fmt.Errorf("purging cache: %w", err)
	}
	live, err := m.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting cache entries: %w", err)
	}
	a.Logger.Info("cache purged",
		zap.String("cache_driver", a.Config.CacheDriver),
		zap.Int64("removed", removed),
		zap.Int("entries", live))
	return nil
}

// CacheEntries reports how many entries the cache holds, or -1 when it cannot tell
func (a *App) CacheEntries(ctx context.Context) int {
	m, ok := a.Cache.(storage.Maintainer)
	if !ok {
		return -1
	}
	n, err := m.Count(ctx)
	if err != nil {
		return -1
	}
	return n
}

// Close releases the cache
func (a *App) Close() error {
	return a.Cache.Close()
}
