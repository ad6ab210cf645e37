package sheet

import (
	"context"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/lovefest/lovefest_backend/config"
)

// Open builds the sheet selected by cfg.Driver. rdb is only consulted by the
// redis driver and may be nil otherwise.
func Open(ctx context.Context, cfg config.SheetConfig, rdb goredis.UniversalClient) (Sheet, error) {
	switch strings.ToLower(cfg.Driver) {
	case "memory":
		return NewMemory(), nil
	case "sqlite", "":
		return OpenSQLite(ctx, cfg.SQLitePath, cfg.Name)
	case "postgres":
		return OpenPostgres(ctx, cfg.Postgres, cfg.Name)
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("sheet driver redis: no redis client")
		}
		return NewRedis(rdb, cfg.RedisKey+":"+cfg.Name), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
