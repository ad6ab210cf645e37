// Package cliconfig loads configuration for subcommands from the global
// --config flag.
package cliconfig

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lovefest/lovefest_backend/config"
	"github.com/lovefest/lovefest_backend/pkg/logs"
)

// Load reads the config next to the --config path and installs the
// configured logger as the slog default.
func Load(cmd *cobra.Command) (*config.Config, error) {
	cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	slog.SetDefault(logs.New(cfg))
	return cfg, nil
}
