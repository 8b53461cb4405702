package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrationsTable tracks the applied version of the records and budgets schema.
const migrationsTable = "fintrack_schema_migrations"

// RunMigrations brings the records and budgets tables at dbPath up to the
// latest embedded version. Running it on an up-to-date database is a no-op.
func RunMigrations(dbPath string) error {
	// Separate handle so the driver's Close does not take the repository's pool with it.
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("records schema: open %s: %w", dbPath, err)
	}
	defer db.Close()

	driver, err := sqlite.WithInstance(db, &sqlite.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return fmt.Errorf("records schema: sqlite driver for %s: %w", dbPath, err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("records schema: embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("records schema: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("records schema: upgrade %s: %w", dbPath, err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("records schema: read version: %w", err)
	}
	if dirty {
		return fmt.Errorf("records schema: version %d left dirty", version)
	}
	slog.Debug("Records schema ready", "path", dbPath, "version", version)
	return nil
}
