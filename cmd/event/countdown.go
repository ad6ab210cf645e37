package event

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/lovefest/lovefest_backend/cmd/cliconfig"
	"github.com/lovefest/lovefest_backend/internal/event"
)

func NewCountdownCommand() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "countdown",
		Short: "Print a live countdown to the event",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliconfig.Load(cmd)
			if err != nil {
				return err
			}
			details, err := event.FromConfig(cfg.Event)
			if err != nil {
				return err
			}
			if !details.Scheduled() {
				return fmt.Errorf("event.start is not configured")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", details.Title, event.CalendarURL(details))
			cd := event.NewCountdown(details.Start, interval)
			defer cd.Stop()
			run(ctx, cd, cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Second, "refresh interval")

	return cmd
}

func run(ctx context.Context, cd *event.Countdown, out io.Writer) {
	for r := range cd.Start(ctx) {
		fmt.Fprintf(out, "\r%s", format(r))
	}
	fmt.Fprintln(out)
}

func format(r event.Remaining) string {
	if r.Started {
		return "The celebration has begun! 💕"
	}
	return fmt.Sprintf("%dd %02dh %02dm %02ds", r.Days, r.Hours, r.Minutes, r.Seconds)
}
