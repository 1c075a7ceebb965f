package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Cache stores upstream response bodies for a bounded time.
// Expired entries are never returned.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
	Close() error
}

// Maintainer is implemented by caches that can drop expired entries
type Maintainer interface {
	Purge(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int, error)
}

// Cache drivers
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverNone   = "none"
)

// Open creates the cache for a driver name
func Open(driver, path string) (Cache, error) {
	switch driver {
	case DriverMemory, "":
		return NewMemoryCache(), nil
	case DriverSQLite:
		store, err := New(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case DriverNone:
		return NopCache{}, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", driver)
	}
}

// KeyFor derives a stable cache key from a request URL
func KeyFor(url string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String()
}

type memoryEntry struct {
	body      []byte
	expiresAt time.Time
}

// MemoryCache is an in-process Cache
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache creates an empty in-process cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns a live entry
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return entry.body, true, nil
}

// Set stores body until ttl elapses
func (c *MemoryCache) Set(_ context.Context, key string, body []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	c.entries[key] = memoryEntry{body: body, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Len counts stored entries, live or not
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Purge drops expired entries and reports how many were removed
func (c *MemoryCache) Purge(_ context.Context) (int64, error) {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	var removed int64
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Count is Len for the Maintainer interface
func (c *MemoryCache) Count(_ context.Context) (int, error) {
	return c.Len(), nil
}

// Close drops all entries
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}

// NopCache never stores anything
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, bool, error)         { return nil, false, nil }
func (NopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NopCache) Close() error                                              { return nil }
