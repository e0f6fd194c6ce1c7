package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"vidtube/internal/config"
	"vidtube/internal/health"
	"vidtube/internal/logging"
	"vidtube/internal/wire"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}
	if err := run(config.LoadConfig()); err != nil {
		os.Exit(1)
	}
}

// run returns instead of exiting so that every deferred cleanup executes.
func run(cfg *config.Config) (err error) {
	_, closeLog, err := logging.Init(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logging: %v\n", err)
		return err
	}
	defer func() {
		if err != nil {
			log.Error().Err(err).Msg("server stopped with error")
		}
		closeLog()
	}()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	app, cleanup, err := wire.InitializeApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer cleanup()

	server := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:        app.Handler,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	grpcServer, healthServer := health.NewGRPCServer()
	grpcListener, err := net.Listen("tcp", ":"+cfg.Server.HealthGRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen for gRPC health on port %s: %w", cfg.Server.HealthGRPCPort, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("API server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info().Str("addr", grpcListener.Addr().String()).Msg("gRPC health server starting")
		return grpcServer.Serve(grpcListener)
	})
	g.Go(func() error {
		health.Watch(gctx, healthServer, app.Mongo, 10*time.Second)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		grpcServer.GracefulStop()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("server gracefully stopped")
	return nil
}
