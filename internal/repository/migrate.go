package repository

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"entgo.io/ent/dialect"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

func migrationSource(dialectName string) (goose.Dialect, fs.FS, error) {
	switch dialectName {
	case dialect.Postgres:
		sub, err := fs.Sub(migrations, "migrations/postgres")
		return goose.DialectPostgres, sub, err
	case dialect.SQLite:
		sub, err := fs.Sub(migrations, "migrations/sqlite")
		return goose.DialectSQLite3, sub, err
	default:
		return "", nil, fmt.Errorf("no migrations for dialect %q", dialectName)
	}
}

func newMigrator(store *Store) (*goose.Provider, error) {
	d, fsys, err := migrationSource(store.dialect)
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(d, store.db, fsys)
}

// Migrate runs all pending database migrations.
func Migrate(ctx context.Context, store *Store, logger *slog.Logger) error {
	provider, err := newMigrator(store)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, r := range results {
		logger.Info("migration applied", "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}

// MigrationVersion returns the current migration version.
func MigrationVersion(ctx context.Context, store *Store) (int64, error) {
	provider, err := newMigrator(store)
	if err != nil {
		return 0, fmt.Errorf("create migrator: %w", err)
	}
	return provider.GetDBVersion(ctx)
}
