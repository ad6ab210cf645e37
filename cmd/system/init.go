package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lovefest/lovefest_backend/cmd/cliconfig"
	"github.com/lovefest/lovefest_backend/pkg/database"
)

func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the sheet database",
		Long: `Create the database backing the sheet.

For the postgres driver this creates the configured database if it does not
exist. For sqlite it creates the directory holding the database file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliconfig.Load(cmd)
			if err != nil {
				return err
			}

			switch cfg.Sheet.Driver {
			case "postgres":
				fmt.Println("Initializing postgres database...")
				if err := database.InitializeDatabase(cfg.Sheet.Postgres); err != nil {
					return fmt.Errorf("failed to initialize database: %w", err)
				}
			case "sqlite", "":
				if err := os.MkdirAll(filepath.Dir(cfg.Sheet.SQLitePath), 0o755); err != nil {
					return fmt.Errorf("failed to create %s: %w", filepath.Dir(cfg.Sheet.SQLitePath), err)
				}
			default:
				fmt.Printf("Nothing to initialize for sheet driver %q.\n", cfg.Sheet.Driver)
				return nil
			}
			fmt.Println("Database initialized successfully.")
			return nil
		},
	}

	return cmd
}
