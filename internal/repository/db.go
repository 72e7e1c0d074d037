package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Config struct {
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// Store is the relational store shared by every repository. The same query
// builders run against PostgreSQL in production and SQLite for local runs and tests.
type Store struct {
	drv     *entsql.Driver
	db      *sql.DB
	pool    *pgxpool.Pool
	dialect string
	now     func() time.Time
}

// NewStore wraps an already opened *sql.DB. dialectName is one of
// dialect.Postgres or dialect.SQLite.
func NewStore(db *sql.DB, dialectName string) *Store {
	return &Store{
		drv:     entsql.OpenDB(dialectName, db),
		db:      db,
		dialect: dialectName,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// DB returns the underlying database handle (migrations, health checks).
func (s *Store) DB() *sql.DB { return s.db }

// Dialect returns the SQL dialect name of the store.
func (s *Store) Dialect() string { return s.dialect }

// SetClock replaces the timestamp source used for created_at/updated_at.
func (s *Store) SetClock(now func() time.Time) { s.now = now }

// IsSQLiteDSN reports whether dsn selects the embedded SQLite driver.
func IsSQLiteDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "sqlite:") || strings.HasPrefix(dsn, "file:") || dsn == ":memory:"
}

// Open connects to the store described by cfg.DSN. postgres:// URLs get a pgx
// pool wrapped for the ent builders; sqlite: and file: DSNs use modernc sqlite.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	if IsSQLiteDSN(cfg.DSN) {
		return openSQLite(ctx, cfg, logger)
	}

	logger.Info("connecting to database", "dialect", dialect.Postgres)
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("failed to parse database url", "error", err)
		return nil, err
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "catalog-cms"
	if cfg.StatementTimeout > 0 {
		pc.ConnConfig.RuntimeParams["statement_timeout"] = fmt.Sprintf("%d", cfg.StatementTimeout.Milliseconds())
	}

	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, err
	}

	// Wrap pool as *sql.DB for the ent builders
	store := NewStore(stdlib.OpenDBFromPool(pool), dialect.Postgres)
	store.pool = pool

	logger.Info("successfully connected to database")
	return store, nil
}

func openSQLite(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	dsn := sqliteDSN(cfg.DSN)
	logger.Info("opening sqlite database", "dsn", dsn)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		logger.Error("failed to open sqlite database", "error", err)
		return nil, err
	}
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		logger.Error("failed to ping sqlite database", "error", err)
		return nil, err
	}
	return NewStore(db, dialect.SQLite), nil
}

// sqliteDSN strips the scheme and pins the driver options the repositories rely on:
// a parseable time format and enforced foreign keys.
func sqliteDSN(dsn string) string {
	dsn = strings.TrimPrefix(dsn, "sqlite://")
	dsn = strings.TrimPrefix(dsn, "sqlite:")
	params := []string{"_time_format=sqlite", "_pragma=foreign_keys(1)"}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

// Close closes the database connections gracefully
func Close(store *Store, logger *slog.Logger) {
	if store == nil {
		return
	}
	logger.Info("closing database connections")
	if err := store.db.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
	}
	if store.pool != nil {
		store.pool.Close()
	}
	logger.Info("database connections closed")
}

// HealthCheck pings the store to catch DSN issues early.
func HealthCheck(ctx context.Context, store *Store, timeout time.Duration, logger *slog.Logger) error {
	logger.Debug("pinging database")
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	var err error
	if store.pool != nil {
		err = store.pool.Ping(ctx)
	} else {
		err = store.db.PingContext(ctx)
	}
	if err != nil {
		logger.Error("database ping failed", "error", err)
		return err
	}
	logger.Debug("database ping successful")
	return nil
}

func (s *Store) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.dialect)
}

// query runs q and hands the open rows to scan; rows are closed afterwards.
func (s *Store) query(ctx context.Context, q entsql.Querier, scan func(entsql.ColumnScanner) error) error {
	query, args := q.Query()
	rows := &entsql.Rows{}
	if err := s.drv.Query(ctx, query, args, rows); err != nil {
		return err
	}
	defer rows.Close()
	return scan(rows)
}

func (s *Store) exec(ctx context.Context, q entsql.Querier) (entsql.Result, error) {
	query, args := q.Query()
	var res entsql.Result
	if err := s.drv.Exec(ctx, query, args, &res); err != nil {
		return nil, err
	}
	return res, nil
}
