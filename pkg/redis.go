package pkg

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/studybuckets/content-service/internal/config"
)

// NewRedisClient connects to redis using the configured URL, applying the
// service's pool sizing and dial timeout on top of whatever the URL carries,
// and verifies the connection with a bounded ping.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	if cfg.RedisPoolSize > 0 {
		opt.PoolSize = cfg.RedisPoolSize
	}
	if cfg.RedisDialTimeout > 0 {
		opt.DialTimeout = cfg.RedisDialTimeout
	}

	client := redis.NewClient(opt)

	pingTimeout := opt.DialTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return client, nil
}
