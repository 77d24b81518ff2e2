package readiness

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/secureapi/secureapi/internal/config"
)

func OpenCache(cfg config.CacheConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Cache probes the Redis connection on every readiness evaluation.
func Cache(client *redis.Client) Check {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping cache: %w", err)
		}
		return nil
	}
}
