package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joseph-ayodele/catalog-cms/internal/app"
	"github.com/joseph-ayodele/catalog-cms/internal/auth"
	"github.com/joseph-ayodele/catalog-cms/internal/catalog"
	"github.com/joseph-ayodele/catalog-cms/internal/common"
	"github.com/joseph-ayodele/catalog-cms/internal/pagination"
	"github.com/joseph-ayodele/catalog-cms/internal/schema"
	"github.com/joseph-ayodele/catalog-cms/internal/server"
)

func main() {
	cfg, err := common.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(2)
	}
	logger := common.NewLogger(cfg.Log)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := server.ConnectDB(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer server.CloseDB(store, logger)

	if err := server.PingDB(ctx, store, logger, 5*time.Second); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	options, err := catalog.Load(cfg.Catalog.OptionsFile, logger)
	if err != nil {
		logger.Error("failed to load catalog options", "path", cfg.Catalog.OptionsFile, "error", err)
		os.Exit(1)
	}

	schemas, err := schema.New()
	if err != nil {
		logger.Error("failed to compile request schemas", "error", err)
		os.Exit(1)
	}

	a := app.New(store, options, logger)
	health := func(ctx context.Context) error {
		return server.PingDB(ctx, store, logger, 2*time.Second)
	}

	router := server.NewRouter(server.Deps{
		Categories: a.Categories,
		HardDrives: a.HardDrives,
		Displays:   a.Displays,
		Export:     a.Export,
		Options:    a.Options,
		Schemas:    schemas,
		Verifier:   auth.NewVerifier(cfg.Auth.JWTSecret),
		CookieName: cfg.Auth.CookieName,
		Paging: pagination.Config{
			DefaultLimit: cfg.Paging.DefaultLimit,
			MaxLimit:     cfg.Paging.MaxLimit,
		},
		Health: health,
		Logger: logger,
	})

	srv := &server.Server{
		HTTPAddr:        cfg.Server.HTTPAddr,
		GRPCHealthAddr:  cfg.Server.GRPCHealthAddr,
		Handler:         router,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Health:          health,
		Logger:          logger,
	}
	if err := srv.Serve(ctx); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("stopped")
}
