package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Redis is a Cache backed by a Redis server. Backend errors degrade to
// cache misses; the API keeps serving either way.
type Redis struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewRedis creates a Redis cache for the given address.
func NewRedis(addr string, log zerolog.Logger) *Redis {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &Redis{
		client: client,
		log:    log.With().Str("component", "cache").Logger(),
	}
}

// Get returns the cached value if present.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.Warn().Err(err).Msg("Redis get failed")
		}
		return nil, false
	}
	return value, true
}

// Set stores a value with the given ttl.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.log.Warn().Err(err).Msg("Redis set failed")
	}
}
