package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"vidtube/internal/common"
	"vidtube/internal/config"
	"vidtube/internal/dbmongo"
	"vidtube/internal/logging"
	"vidtube/internal/media"
)

func main() {
	_ = godotenv.Load()
	if err := run(config.LoadConfig()); err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config) (err error) {
	_, closeLog, err := logging.Init(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logging: %v\n", err)
		return err
	}
	defer func() {
		if err != nil {
			log.Error().Err(err).Msg("media server stopped with error")
		}
		closeLog()
	}()

	mongoClient, err := dbmongo.NewMongoConnection(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer mongoClient.Close(context.Background())

	mediaServer := media.NewHTTPServer(dbmongo.NewMediaStorage(mongoClient))
	server := &http.Server{
		Addr:    ":" + cfg.Server.MediaPort,
		Handler: common.RequestID(common.AccessLog(common.Recover(mediaServer))),
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Str("baseURL", cfg.Server.MediaBaseURL).Msg("media server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("media server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("media server forced to shutdown: %w", err)
	}
	return nil
}
