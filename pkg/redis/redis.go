package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/solidus85/evvie-time-tracker/config"
)

const blacklistPrefix = "token:blacklist:"

// Client wraps the Redis connection.
// Currently backs the token blacklist used on logout.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects to Redis and runs a ping health check.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// BlacklistToken marks a token ID as revoked until it would have expired.
func (c *Client) BlacklistToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.rdb.Set(ctx, blacklistPrefix+tokenID, "1", ttl).Err()
}

// IsTokenBlacklisted reports whether a token ID has been revoked.
func (c *Client) IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Close shuts the underlying connection down.
func (c *Client) Close() error {
	return c.rdb.Close()
}
