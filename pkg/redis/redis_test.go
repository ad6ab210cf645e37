package redis

import (
	"testing"
	"time"

	"github.com/lovefest/lovefest_backend/config"
)

func TestOptions_Defaults(t *testing.T) {
	opts := Options(config.RedisConfig{Addr: "cache:6379", DB: 2})

	if opts.Addr != "cache:6379" || opts.DB != 2 {
		t.Fatalf("unexpected addr/db: %s/%d", opts.Addr, opts.DB)
	}
	if opts.PoolSize != defaultPoolSize {
		t.Errorf("PoolSize = %d, want %d", opts.PoolSize, defaultPoolSize)
	}
	if opts.MinIdleConns != defaultMinIdleConns {
		t.Errorf("MinIdleConns = %d, want %d", opts.MinIdleConns, defaultMinIdleConns)
	}
	if opts.DialTimeout != 5*time.Second {
		t.Errorf("DialTimeout = %v, want 5s", opts.DialTimeout)
	}
}

func TestOptions_Overrides(t *testing.T) {
	opts := Options(config.RedisConfig{PoolSize: 4, ReadTimeoutSeconds: 9})
	if opts.PoolSize != 4 {
		t.Errorf("PoolSize = %d, want 4", opts.PoolSize)
	}
	if opts.ReadTimeout != 9*time.Second {
		t.Errorf("ReadTimeout = %v, want 9s", opts.ReadTimeout)
	}
}

func TestNewRedis_Disabled(t *testing.T) {
	if _, err := NewRedis(config.RedisConfig{Addr: "x:1"}); err == nil {
		t.Fatal("expected error for disabled redis")
	}
}
