package db

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"gold-day-go/internal/config"
	"gold-day-go/pkg/logger"
)

// NewRedis connects to Redis from the provided configuration. Returns nil
// when no URL is configured; callers fall back to in-memory storage.
func NewRedis(cfg config.RedisConfig, log logger.Logger) (*redis.Client, error) {
	if cfg.URL == "" {
		log.Info("redis: not configured, using in-memory fallback")
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Info("redis: connected")
	return client, nil
}
