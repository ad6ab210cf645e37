package system

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/lovefest/lovefest_backend/cmd/cliconfig"
	"github.com/lovefest/lovefest_backend/internal/rsvp"
	"github.com/lovefest/lovefest_backend/internal/sheet"
	redispkg "github.com/lovefest/lovefest_backend/pkg/redis"
)

func NewMigrateCommand() *cobra.Command {
	var writeHeader bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create sheet tables and optionally the header row",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliconfig.Load(cmd)
			if err != nil {
				return err
			}

			timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			var rdb goredis.UniversalClient
			if cfg.Redis.Enabled {
				c, err := redispkg.NewRedis(cfg.Redis)
				if err != nil {
					return err
				}
				defer c.Close()
				rdb = c
			}

			// Opening a SQL-backed sheet applies its schema.
			fmt.Printf("Preparing sheet %q (%s).\n", cfg.Sheet.Name, cfg.Sheet.Driver)
			sh, err := sheet.Open(ctx, cfg.Sheet, rdb)
			if err != nil {
				return fmt.Errorf("failed to open sheet: %w", err)
			}
			defer sh.Close()

			if writeHeader {
				n, err := sh.RowCount(ctx)
				if err != nil {
					return err
				}
				if n == 0 {
					header := rsvp.HeaderFor(cfg.Form.ContactField)
					err := sh.WriteHeader(ctx, sheet.Header{
						Cells:  header,
						Bold:   true,
						Widths: sheet.AutoSize(header),
					})
					if err != nil {
						return fmt.Errorf("failed to write header: %w", err)
					}
				}
			}

			fmt.Println("Migrations executed successfully.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&writeHeader, "header", false, "write the header row if the sheet is empty")

	return cmd
}
