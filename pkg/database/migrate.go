package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/SscSPs/backoffice/migrations"
	migrate "github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Supported values of the DB_DRIVER setting.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Direction selects which way migrations run.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// RunMigrations applies the embedded migrations of driver to the database at
// dsn (a PostgreSQL URL or a SQLite file path). steps limits how many
// migrations run; zero runs all of them. A separate connection is opened and
// closed for the run.
func RunMigrations(driver, dsn string, dir Direction, steps int, logger *slog.Logger) error {
	m, err := newMigrate(driver, dsn)
	if err != nil {
		return err
	}
	defer func() {
		sourceErr, dbErr := m.Close()
		if sourceErr != nil {
			logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		}
		if dbErr != nil {
			logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		}
	}()

	switch {
	case steps > 0 && dir == Up:
		err = m.Steps(steps)
	case steps > 0 && dir == Down:
		err = m.Steps(-steps)
	case dir == Up:
		err = m.Up()
	case dir == Down:
		err = m.Down()
	default:
		return fmt.Errorf("unknown migration direction %q", dir)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.", slog.String("driver", driver))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", verr)
	}
	logger.Info("Database migrations applied successfully.",
		slog.String("driver", driver),
		slog.String("direction", string(dir)),
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)
	return nil
}

func newMigrate(driver, dsn string) (*migrate.Migrate, error) {
	var (
		fsys     fs.FS
		dir      string
		db       *sql.DB
		instance migratedb.Driver
		err      error
	)

	switch driver {
	case DriverPostgres:
		fsys, dir = migrations.Postgres, "postgres"
		if db, err = sql.Open("pgx", dsn); err != nil {
			return nil, fmt.Errorf("failed to open database connection for migrations: %w", err)
		}
		instance, err = migratepgx.WithInstance(db, &migratepgx.Config{})
	case DriverSQLite:
		fsys, dir = migrations.SQLite, "sqlite"
		if db, err = sql.Open("sqlite", SQLiteDSN(dsn)); err != nil {
			return nil, fmt.Errorf("failed to open database connection for migrations: %w", err)
		}
		instance, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not create %s driver instance for migrations: %w", driver, err)
	}

	source, err := iofs.New(fsys, dir)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not read embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, instance)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not create migrate instance: %w", err)
	}
	return m, nil
}
