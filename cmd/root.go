package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	chatcmd "github.com/lovefest/lovefest_backend/cmd/chat"
	eventcmd "github.com/lovefest/lovefest_backend/cmd/event"
	httpcmd "github.com/lovefest/lovefest_backend/cmd/http"
	rsvpcmd "github.com/lovefest/lovefest_backend/cmd/rsvp"
	systemcmd "github.com/lovefest/lovefest_backend/cmd/system"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "lovefest",
	Short: "Backend for an engagement celebration site.",
	Long: `Lovefest runs the RSVP pipeline behind an event invitation site.
It ingests guest responses into a sheet, answers guest questions through a chat
assistant and notifies the organizers when someone replies.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
	rootCmd.AddCommand(rsvpcmd.NewRSVPCommand())
	rootCmd.AddCommand(chatcmd.NewChatCommand())
	rootCmd.AddCommand(eventcmd.NewCountdownCommand())
}
