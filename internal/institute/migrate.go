package institute

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// gooseDialect maps institute drivers to goose dialect names.
var gooseDialect = map[string]string{
	"mysql":  "mysql",
	"pgx":    "postgres",
	"sqlite": "sqlite",
}

// Migrate creates the it_institute table with the bundled migrations.
func Migrate(db *sql.DB, driver string) error {
	dialect, ok := gooseDialect[driver]
	if !ok {
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	// Configure goose for embedded migrations
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// MigrationVersion returns the current migration version.
func MigrationVersion(db *sql.DB, driver string) (int64, error) {
	dialect, ok := gooseDialect[driver]
	if !ok {
		return 0, fmt.Errorf("no migrations for driver %q", driver)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return 0, fmt.Errorf("failed to set dialect: %w", err)
	}

	return goose.GetDBVersion(db)
}
