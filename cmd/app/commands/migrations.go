package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/devdox-ai/devdox-api/internal/database"
)

// MigrationsSource returns the migrate source URL for driver.
func MigrationsSource(driver string) string {
	if driver == database.DriverMySQL {
		return "file://migrations/mysql"
	}
	return "file://migrations/postgresql"
}

// RunMigrations applies all pending migrations for the given driver. A database that is
// already up to date is not an error.
func RunMigrations(logger *slog.Logger, driver, dsn string) error {
	logger.Info("running database migrations", slog.String("driver", driver))

	m, err := migrate.New(MigrationsSource(driver), migrationsURL(driver, dsn))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}

// migrationsURL adds the mysql:// scheme migrate expects in front of a go-sql-driver DSN.
func migrationsURL(driver, dsn string) string {
	if driver == database.DriverMySQL {
		return "mysql://" + dsn
	}
	return dsn
}
