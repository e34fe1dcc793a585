package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
)

// Config holds Redis connection settings
type Config struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// NewRedisClient connects and pings the server
func NewRedisClient(ctx context.Context, cfg Config, logger coreport.Logger) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		logger.Error("Failed to connect to Redis", map[string]any{
			"addr":  cfg.Addr,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	logger.Info("Connected to Redis", map[string]any{"addr": cfg.Addr})
	return client, nil
}
