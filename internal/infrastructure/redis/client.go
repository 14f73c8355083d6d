package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const pingTimeout = 5 * time.Second

// NewClient creates a Redis client from a redis:// URL and verifies it
// answers PING.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// Connect returns nil without error when redisURL is empty, which disables
// every Redis-backed feature.
func Connect(ctx context.Context, redisURL string, logger zerolog.Logger) (*redis.Client, error) {
	if redisURL == "" {
		logger.Info().Msg("REDIS_URL not set, idempotency keys disabled")
		return nil, nil
	}

	client, err := NewClient(ctx, redisURL)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("addr", client.Options().Addr).Msg("connected to redis")

	return client, nil
}
