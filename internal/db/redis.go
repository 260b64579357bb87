package db

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewRedis connects to Redis. It returns nil when redisURL is empty or the
// server cannot be reached; callers fall back to in-process state.
func NewRedis(redisURL string, log zerolog.Logger) *redis.Client {
	if redisURL == "" {
		log.Info().Msg("redis: no URL configured, using in-memory rate limiting")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis: invalid URL, using in-memory rate limiting")
		return nil
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis: connection failed, using in-memory rate limiting")
		_ = rdb.Close()
		return nil
	}

	log.Info().Str("addr", opts.Addr).Msg("redis: connected")
	return rdb
}
