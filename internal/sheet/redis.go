package sheet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// Redis keeps the header as a JSON string at <key>:header and data rows as
// JSON arrays in the list <key>:rows. RPUSH keeps insertion order.
type Redis struct {
	rdb goredis.UniversalClient
	key string
}

func NewRedis(rdb goredis.UniversalClient, key string) *Redis {
	return &Redis{rdb: rdb, key: key}
}

func (r *Redis) headerKey() string { return r.key + ":header" }
func (r *Redis) rowsKey() string   { return r.key + ":rows" }

func (r *Redis) RowCount(ctx context.Context) (int, error) {
	pipe := r.rdb.Pipeline()
	hasHeader := pipe.Exists(ctx, r.headerKey())
	rows := pipe.LLen(ctx, r.rowsKey())
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return int(hasHeader.Val() + rows.Val()), nil
}

func (r *Redis) WriteHeader(ctx context.Context, h Header) error {
	b, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("marshal header: %w", err)
	}
	if err := r.rdb.Set(ctx, r.headerKey(), b, 0).Err(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

func (r *Redis) Header(ctx context.Context) (*Header, error) {
	b, err := r.rdb.Get(ctx, r.headerKey()).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	var h Header
	if err := json.Unmarshal(b, &h); err != nil {
		return nil, fmt.Errorf("decode header: %w", err)
	}
	return &h, nil
}

func (r *Redis) Append(ctx context.Context, row []string) error {
	b, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("marshal row: %w", err)
	}
	if err := r.rdb.RPush(ctx, r.rowsKey(), b).Err(); err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}

func (r *Redis) Rows(ctx context.Context) ([][]string, error) {
	raw, err := r.rdb.LRange(ctx, r.rowsKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	rows := make([][]string, 0, len(raw))
	for _, s := range raw {
		var row []string
		if err := json.Unmarshal([]byte(s), &row); err != nil {
			return nil, fmt.Errorf("decode row: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Close is a no-op: the client is shared and owned by the caller.
func (r *Redis) Close() error { return nil }
