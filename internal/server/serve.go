package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Server runs the HTTP API and, when an address is configured, a gRPC
// health endpoint for orchestrators.
type Server struct {
	HTTPAddr        string
	GRPCHealthAddr  string
	Handler         http.Handler
	ShutdownTimeout time.Duration
	// Health drives the gRPC serving status; nil means always serving.
	Health       func(ctx context.Context) error
	HealthPeriod time.Duration
	Logger       *slog.Logger
}

// Serve blocks until ctx is cancelled or a listener fails, then shuts
// everything down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := s.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	var lis net.Listener
	if s.GRPCHealthAddr != "" {
		var err error
		if lis, err = net.Listen("tcp", s.GRPCHealthAddr); err != nil {
			return fmt.Errorf("grpc listen: %w", err)
		}
	}

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:              s.HTTPAddr,
		Handler:           s.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	eg.Go(func() error {
		logger.Info("http serving", "addr", s.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		logger.Info("shutting down http server")
		return srv.Shutdown(shutdownCtx)
	})

	if lis != nil {
		gs, hs := NewHealthServer()
		eg.Go(func() error {
			logger.Info("grpc health serving", "addr", lis.Addr().String())
			if err := gs.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("grpc serve: %w", err)
			}
			return nil
		})
		eg.Go(func() error {
			WatchHealth(egctx, hs, s.Health, s.HealthPeriod, logger)
			gs.GracefulStop()
			return nil
		})
	}

	return eg.Wait()
}

// NewHealthServer builds a gRPC server exposing the standard health service.
func NewHealthServer() (*grpc.Server, *health.Server) {
	gs := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	reflection.Register(gs)
	return gs, hs
}

// WatchHealth updates the serving status from check every period until ctx
// is done, then marks the server as shutting down.
func WatchHealth(ctx context.Context, hs *health.Server, check func(context.Context) error, period time.Duration, logger *slog.Logger) {
	if period <= 0 {
		period = 15 * time.Second
	}
	update := func() {
		if check == nil {
			return
		}
		cctx, cancel := context.WithTimeout(ctx, period)
		defer cancel()
		if err := check(cctx); err != nil {
			logger.Warn("health check failed", "error", err)
			hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
			return
		}
		hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	}

	update()
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			hs.Shutdown()
			return
		case <-ticker.C:
			update()
		}
	}
}
