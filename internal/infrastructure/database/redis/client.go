// Package redis provides the Redis connection and the parsed-dataset cache
// that fronts the PostgreSQL analysis store.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/piyushjha0409/DockAI/internal/config"
	"github.com/piyushjha0409/DockAI/internal/infrastructure/monitoring/logging"
	"github.com/piyushjha0409/DockAI/pkg/errors"
)

// NewClient establishes a Redis connection according to cfg and verifies it
// with a ping before returning.
func NewClient(ctx context.Context, cfg config.RedisConfig, log logging.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "redis connection failed")
	}

	log.Info("redis connected", logging.String("addr", cfg.Addr), logging.Int("db", cfg.DB))
	return client, nil
}
