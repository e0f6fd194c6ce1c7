// Command media-janitor deletes media files whose inline removal failed and
// was queued for retry.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"vidtube/internal/config"
	"vidtube/internal/dbmongo"
	"vidtube/internal/logging"
	"vidtube/internal/queue"
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
			log.Error().Err(err).Msg("media-janitor stopped")
		}
		closeLog()
	}()

	if !cfg.RabbitMQ.Enabled {
		return errors.New("media-janitor requires RABBITMQ_ENABLED")
	}

	mongoClient, err := dbmongo.NewMongoConnection(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer mongoClient.Close(context.Background())

	storage := dbmongo.NewMediaStorage(mongoClient)
	consumer := queue.NewConsumer(cfg.RabbitMQ.URL, cfg.RabbitMQ.CleanupQueue, cfg.Media.MaxRetries,
		func(ctx context.Context, event queue.MediaCleanupEvent) error {
			ctx, cancel := mongoClient.WithTimeout(ctx)
			defer cancel()
			if err := storage.DeleteFile(ctx, event.FileID); err != nil {
				return err
			}
			log.Info().Str("fileId", event.FileID).Str("reason", event.Reason).Msg("media file removed")
			return nil
		})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("queue", cfg.RabbitMQ.CleanupQueue).Msg("media-janitor consuming")
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
