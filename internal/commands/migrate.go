package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/SscSPs/backoffice/internal/app"
	"github.com/SscSPs/backoffice/internal/platform/config"
	"github.com/SscSPs/backoffice/pkg/database"
)

func newMigrateCommand() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply or roll back schema migrations for the configured DB_DRIVER",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(database.Up), string(database.Down)},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := database.Direction(args[0])
			if dir != database.Up && dir != database.Down {
				return fmt.Errorf("unknown direction %q, expected up or down", args[0])
			}
			if steps < 0 {
				return fmt.Errorf("--steps must not be negative")
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			dsn, err := app.MigrationDSN(cfg)
			if err != nil {
				return err
			}
			return database.RunMigrations(cfg.DBDriver, dsn, dir, steps, slog.Default())
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 0, "number of migrations to apply (0 applies all)")

	return cmd
}
