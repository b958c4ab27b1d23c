package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"gold-day-go/internal/domain/goldprice"
)

const priceCacheKey = "gold_price:cache"

// PriceCache keeps the last known snapshot in Redis so it survives restarts
// and is shared across instances.
type PriceCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewPriceCache(client *goredis.Client, ttl time.Duration) *PriceCache {
	return &PriceCache{client: client, ttl: ttl}
}

func (c *PriceCache) Get(ctx context.Context) (*goldprice.CachedSnapshot, error) {
	data, err := c.client.Get(ctx, priceCacheKey).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("price cache get: %w", err)
	}

	var cached goldprice.CachedSnapshot
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("price cache decode: %w", err)
	}
	return &cached, nil
}

func (c *PriceCache) Set(ctx context.Context, cached goldprice.CachedSnapshot) error {
	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("price cache encode: %w", err)
	}
	if err := c.client.Set(ctx, priceCacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("price cache set: %w", err)
	}
	return nil
}
