package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationsFS embed.FS

// MigrationsDir returns the embedded migrations directory for the given driver.
func MigrationsDir(driver string) (string, error) {
	switch driver {
	case DriverSQLite:
		return "migrations/sqlite", nil
	case DriverPostgres:
		return "migrations/postgresql", nil
	case DriverMySQL:
		return "migrations/mysql", nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// RunMigrations applies every pending migration for cfg.Driver and returns the resulting
// schema version. It opens and closes its own connection, so it is safe to call before
// the application's handle is opened.
func RunMigrations(cfg Config) (uint, error) {
	dir, err := MigrationsDir(cfg.Driver)
	if err != nil {
		return 0, err
	}

	db, err := Connect(cfg)
	if err != nil {
		return 0, err
	}

	driver, err := migrationDriver(cfg.Driver, db)
	if err != nil {
		_ = db.Close()
		return 0, fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, dir)
	if err != nil {
		_ = db.Close()
		return 0, fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, cfg.Driver, driver)
	if err != nil {
		_ = db.Close()
		return 0, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	// Closing the migrate instance closes db as well.
	defer func() {
		_, _ = m.Close()
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("failed to run migrations: %w", err)
	}

	version, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, fmt.Errorf("failed to read migration version: %w", err)
	}

	return version, nil
}

func migrationDriver(driver string, db *sql.DB) (migratedb.Driver, error) {
	switch driver {
	case DriverSQLite:
		return sqlite.WithInstance(db, &sqlite.Config{})
	case DriverPostgres:
		return postgres.WithInstance(db, &postgres.Config{})
	case DriverMySQL:
		return mysql.WithInstance(db, &mysql.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}
