package cache

import (
	"context"
	"sync"
	"time"

	"github.com/stockfolio/server/pkg/domain/stock"
)

// MemoryQuoteCache implements QuoteCache with in-memory storage. Used
// when no Redis URL is configured.
type MemoryQuoteCache struct {
	cache map[string]*cacheEntry
	mu    sync.RWMutex
}

// NewMemoryQuoteCache creates an in-memory quote cache and starts its
// cleanup goroutine.
func NewMemoryQuoteCache() *MemoryQuoteCache {
	c := &MemoryQuoteCache{cache: make(map[string]*cacheEntry)}
	go c.cleanup()
	return c
}

func (c *MemoryQuoteCache) Get(_ context.Context, key string) (*stock.Candle, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.cache[key]
	if !exists || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	return entry.candle, nil
}

func (c *MemoryQuoteCache) Set(_ context.Context, key string, candle *stock.Candle, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache[key] = &cacheEntry{
		candle:    candle,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (c *MemoryQuoteCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.cache, key)
	return nil
}

func (c *MemoryQuoteCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.cache {
			if now.After(entry.expiresAt) {
				delete(c.cache, key)
			}
		}
		c.mu.Unlock()
	}
}

type cacheEntry struct {
	candle    *stock.Candle
	expiresAt time.Time
}
