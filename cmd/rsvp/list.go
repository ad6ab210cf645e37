package rsvp

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lovefest/lovefest_backend/cmd/cliconfig"
	svcrsvp "github.com/lovefest/lovefest_backend/internal/service/rsvp"
)

func NewListCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List received RSVPs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliconfig.Load(cmd)
			if err != nil {
				return err
			}
			sh, closeFn, err := openSheet(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			subs, err := svcrsvp.New(sh, nil).List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(subs)
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "RECEIVED\tNAME\tCONTACT\tATTENDING\tGUESTS\tMESSAGE")
			for _, s := range subs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					s.ServerTimestamp.Local().Format("2006-01-02 15:04"),
					s.Name, s.Contact, s.Attendance, s.Guests, s.Message)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}

func NewSummaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show attendance totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliconfig.Load(cmd)
			if err != nil {
				return err
			}
			sh, closeFn, err := openSheet(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			sum, err := svcrsvp.New(sh, nil).Summary(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Responses:       %d\n", sum.Total)
			fmt.Fprintf(out, "Attending:       %d\n", sum.Attending)
			fmt.Fprintf(out, "Not attending:   %d\n", sum.NotAttending)
			if sum.Unknown > 0 {
				fmt.Fprintf(out, "Unclear:         %d\n", sum.Unknown)
			}
			fmt.Fprintf(out, "Expected guests: %d\n", sum.ExpectedGuests)
			return nil
		},
	}

	return cmd
}
