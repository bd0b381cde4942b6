package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"al-muallim/backend/config"
)

// Client wraps the Redis connection. Used for the settings-updated
// broadcast and export rate limiting; the service runs without it.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── settings-updated broadcast ──

const settingsChannel = "al_muallim:settings_updated"

// SettingsUpdated publishes the settings-updated notification so other
// observers (dashboards, cached views) can refresh. Publish failures are
// logged, never propagated: a broken broadcast must not fail the write.
func (c *Client) SettingsUpdated(ctx context.Context) {
	if err := c.rdb.Publish(ctx, settingsChannel, time.Now().UnixMilli()).Err(); err != nil {
		c.logger.Warn("publish settings-updated failed", zap.Error(err))
	}
}

// ── rate limiting ──

// CheckRateLimit implements a fixed-window counter per key. Returns
// whether the request is allowed.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
