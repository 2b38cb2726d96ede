package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SscSPs/backoffice/internal/app"
	portssvc "github.com/SscSPs/backoffice/internal/core/ports/services"
	"github.com/SscSPs/backoffice/internal/platform/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "backofficectl",
		Short: "Operator tooling for the backoffice ledger",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newMigrateCommand(),
		newVoucherNumberCommand(),
		newVerifyBalancesCommand(),
		newReverseEntryCommand(),
	)

	return rootCmd
}

// withServices loads the configuration, opens the database and runs fn
// against the wired services.
func withServices(ctx context.Context, fn func(*portssvc.ServiceContainer) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	// Operator commands never migrate implicitly.
	cfg.RunMigrations = false

	container, closeDB, err := app.Open(ctx, cfg, slog.Default())
	if err != nil {
		return err
	}
	defer closeDB()
	return fn(container)
}

func operator() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "backofficectl"
}
