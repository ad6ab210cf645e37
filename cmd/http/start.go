package http

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/lovefest/lovefest_backend/cmd/cliconfig"
	"github.com/lovefest/lovefest_backend/internal/api/http"
)

func NewStartCommand() *cobra.Command {
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Set up structured logger before fx starts so all logs use it.
			cfg, err := cliconfig.Load(cmd)
			if err != nil {
				return err
			}
			http.Start(cfg, shutdownTimeout)
			return nil
		},
	}

	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 30*time.Second, "Maximum time to wait for graceful shutdown")

	return cmd
}
