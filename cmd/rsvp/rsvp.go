package rsvp

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/lovefest/lovefest_backend/config"
	"github.com/lovefest/lovefest_backend/internal/sheet"
	redispkg "github.com/lovefest/lovefest_backend/pkg/redis"
)

func NewRSVPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rsvp",
		Short: "Submit and inspect RSVP responses",
	}

	cmd.AddCommand(NewSubmitCommand())
	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewSummaryCommand())
	cmd.AddCommand(NewExportCommand())

	return cmd
}

// openSheet opens the configured sheet directly, without the HTTP server.
func openSheet(ctx context.Context, cfg *config.Config) (sheet.Sheet, func() error, error) {
	var rdb *goredis.Client
	if cfg.Redis.Enabled {
		c, err := redispkg.NewRedis(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		rdb = c
	}

	var client goredis.UniversalClient
	if rdb != nil {
		client = rdb
	}
	sh, err := sheet.Open(ctx, cfg.Sheet, client)
	if err != nil {
		if rdb != nil {
			_ = rdb.Close()
		}
		return nil, nil, err
	}

	closeFn := func() error {
		err := sh.Close()
		if rdb != nil {
			err = errors.Join(err, rdb.Close())
		}
		return err
	}
	return sh, closeFn, nil
}
