package http

import "github.com/spf13/cobra"

func NewHTTPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "http",
		Short: "Run the RSVP ingest and chat HTTP API",
	}

	cmd.AddCommand(NewStartCommand())

	return cmd
}
