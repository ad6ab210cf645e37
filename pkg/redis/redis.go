// Package redis builds the shared go-redis client used by the redis sheet
// driver and the rate limiter storage.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/lovefest/lovefest_backend/config"
)

const (
	defaultPoolSize     = 10
	defaultMinIdleConns = 2
)

func seconds(n int, fallback time.Duration) time.Duration {
	if n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}

// Options maps the central redis section onto go-redis options, filling
// unset pool and timeout values with defaults.
func Options(c config.RedisConfig) *goredis.Options {
	opts := &goredis.Options{
		Addr:         c.Addr,
		Username:     c.Username,
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConns,
		DialTimeout:  seconds(c.DialTimeoutSeconds, 5*time.Second),
		ReadTimeout:  seconds(c.ReadTimeoutSeconds, 3*time.Second),
		WriteTimeout: seconds(c.WriteTimeoutSeconds, 3*time.Second),
	}
	if opts.PoolSize <= 0 {
		opts.PoolSize = defaultPoolSize
	}
	if opts.MinIdleConns <= 0 {
		opts.MinIdleConns = defaultMinIdleConns
	}
	return opts
}

// NewRedis connects and pings. A disabled section is reported as an error so
// callers decide whether redis is optional for them.
func NewRedis(c config.RedisConfig) (*goredis.Client, error) {
	if !c.Enabled {
		return nil, fmt.Errorf("redis is disabled")
	}
	if c.Addr == "" {
		return nil, fmt.Errorf("redis addr is empty")
	}

	rdb := goredis.NewClient(Options(c))

	ctx, cancel := context.WithTimeout(context.Background(), seconds(c.DialTimeoutSeconds, 5*time.Second))
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return rdb, nil
}
