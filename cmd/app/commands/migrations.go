package commands

import (
	"fmt"
	"io"
	"log/slog"
)

// Migrator applies the embedded schema migrations.
type Migrator interface {
	MigrateDB() (uint, error)
}

// RunMigrations applies all pending migrations for the configured driver and prints
// the resulting schema version. Nothing to apply is not an error.
func RunMigrations(migrator Migrator, logger *slog.Logger, writer io.Writer, driver string) error {
	logger.Info("running database migrations", slog.String("driver", driver))

	version, err := migrator.MigrateDB()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(writer, "Database schema at version %d\n", version)

	logger.Info("migrations completed successfully", slog.Uint64("version", uint64(version)))
	return nil
}
