package inmemory

import (
	"context"
	"sync"
	"time"

	"gold-day-go/internal/domain/goldprice"
)

// PriceCache is the single-process fallback used when Redis is not
// configured.
type PriceCache struct {
	mu    sync.RWMutex
	value *goldprice.CachedSnapshot
	ttl   time.Duration
}

func NewPriceCache(ttl time.Duration) *PriceCache {
	return &PriceCache{ttl: ttl}
}

func (c *PriceCache) Get(_ context.Context) (*goldprice.CachedSnapshot, error) {
	c.mu.RLock()
	cached := c.value
	c.mu.RUnlock()

	if cached == nil {
		return nil, nil
	}
	if c.ttl > 0 && time.Since(cached.StoredAt) > c.ttl {
		c.mu.Lock()
		if c.value == cached {
			c.value = nil
		}
		c.mu.Unlock()
		return nil, nil
	}

	value := *cached
	return &value, nil
}

func (c *PriceCache) Set(_ context.Context, cached goldprice.CachedSnapshot) error {
	c.mu.Lock()
	c.value = &cached
	c.mu.Unlock()
	return nil
}
