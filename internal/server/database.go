package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/catalog-cms/internal/common"
	repo "github.com/joseph-ayodele/catalog-cms/internal/repository"
)

// ConnectDB opens the store described by cfg and runs migrations when AUTO_MIGRATE is set.
func ConnectDB(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*repo.Store, error) {
	store, err := repo.Open(ctx, repo.Config{
		DSN:              cfg.DSN,
		MaxConns:         cfg.MaxConns,
		MinConns:         cfg.MinConns,
		MaxConnLifetime:  cfg.MaxConnLifetime,
		MaxConnIdleTime:  cfg.MaxConnIdleTime,
		DialTimeout:      cfg.DialTimeout,
		StatementTimeout: cfg.StatementTimeout,
	}, logger)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := repo.Migrate(ctx, store, logger); err != nil {
			repo.Close(store, logger)
			return nil, common.WrapError(err, "run migrations")
		}
	}
	return store, nil
}

// PingDB pings the database to ensure it's responsive
func PingDB(ctx context.Context, store *repo.Store, logger *slog.Logger, timeout time.Duration) error {
	return repo.HealthCheck(ctx, store, timeout, logger)
}

// CloseDB closes the database connections gracefully
func CloseDB(store *repo.Store, logger *slog.Logger) {
	repo.Close(store, logger)
}
