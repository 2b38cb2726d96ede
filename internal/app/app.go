// Package app opens the configured database and assembles the service
// container shared by the HTTP server and the operator CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"

	portssvc "github.com/SscSPs/backoffice/internal/core/ports/services"
	"github.com/SscSPs/backoffice/internal/core/services"
	"github.com/SscSPs/backoffice/internal/platform/config"
	"github.com/SscSPs/backoffice/internal/repositories/database/pgsql"
	"github.com/SscSPs/backoffice/internal/repositories/database/sqlite"
	"github.com/SscSPs/backoffice/pkg/database"
)

// MigrationDSN returns the data source the migrator should use for cfg.
func MigrationDSN(cfg *config.Config) (string, error) {
	switch cfg.DBDriver {
	case database.DriverPostgres:
		return cfg.DatabaseURL, nil
	case database.DriverSQLite:
		return cfg.SQLitePath, nil
	}
	return "", fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

// Open connects to the database selected by cfg.DBDriver, applies pending
// migrations when cfg.RunMigrations is set and returns the wired services.
// The returned func releases the database handle.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*portssvc.ServiceContainer, func(), error) {
	if cfg.RunMigrations {
		dsn, err := MigrationDSN(cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DBDriver, dsn, database.Up, 0, logger); err != nil {
			return nil, nil, err
		}
	}

	switch cfg.DBDriver {
	case database.DriverPostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		container := services.NewServiceContainer(cfg, pgsql.NewTxManager(pool), pgsql.NewRepositoryProvider(pool))
		return container, pool.Close, nil

	case database.DriverSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.SQLitePath, cfg.EnableDBCheck)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize sqlite database: %w", err)
		}
		container := services.NewServiceContainer(cfg, sqlite.NewTxManager(db), sqlite.NewRepositoryProvider(db))
		closeDB := func() {
			if err := db.Close(); err != nil {
				logger.Error("Error closing sqlite database", slog.String("error", err.Error()))
			}
		}
		return container, closeDB, nil
	}

	return nil, nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}
