package wire

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"vidtube/internal/cache"
	"vidtube/internal/common"
	"vidtube/internal/config"
	"vidtube/internal/dbmongo"
	"vidtube/internal/health"
	"vidtube/internal/media"
	"vidtube/internal/queue"
	"vidtube/internal/ratelimit"
	"vidtube/internal/user"
	"vidtube/internal/video"
)

// Application is everything cmd/server needs to serve and shut down.
type Application struct {
	Config  *config.Config
	Mongo   *dbmongo.MongoClient
	Handler *Router
}

func ProvideDatabaseConnection(cfg *config.Config) (*dbmongo.MongoClient, func(), error) {
	mc, err := dbmongo.NewMongoConnection(cfg)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := mc.EnsureIndexes(ctx); err != nil {
		_ = mc.Close(context.Background())
		return nil, nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mc.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}
	return mc, cleanup, nil
}

// ProvideRedis may return a nil client; every consumer tolerates that.
func ProvideRedis(cfg *config.Config) (*redis.Client, func()) {
	rdb := cache.NewRedisClient(cfg.Redis)
	return rdb, func() {
		if rdb != nil {
			_ = rdb.Close()
		}
	}
}

func ProvideCleanupPublisher(cfg *config.Config) (queue.Publisher, func()) {
	if !cfg.RabbitMQ.Enabled {
		log.Info().Msg("rabbitmq disabled, media cleanup will only be logged")
		return queue.LogPublisher{}, func() {}
	}
	p := queue.NewRabbitPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.CleanupQueue)
	return p, func() {
		if err := p.Close(); err != nil {
			log.Warn().Err(err).Msg("rabbitmq close failed")
		}
	}
}

func ProvideMediaHost(cfg *config.Config, storage *dbmongo.MediaStorage, cleanup queue.Publisher) *media.Host {
	return media.NewHost(storage, cleanup, cfg.Media, cfg.Server.MediaBaseURL)
}

func ProvideStatsCache(cfg *config.Config, rdb *redis.Client) *cache.JSONCache {
	return cache.NewStatsCache(rdb, cfg.Cache)
}

func ProvideLimiter(cfg *config.Config, rdb *redis.Client) *ratelimit.Limiter {
	return ratelimit.NewFromClient(cfg.RateLimit, rdb)
}

func ProvideVideoHandler(cfg *config.Config, svc video.Service) *video.Handler {
	return video.NewHandler(svc, cfg.Media.MaxUploadBytes)
}

func ProvideUserService(cfg *config.Config, repo user.Repository) user.Service {
	return user.NewService(repo, TokenOptions(cfg), cfg.Auth.BcryptCost)
}

func ProvideHealthHandler(mc *dbmongo.MongoClient) *health.Handler {
	return health.NewHandler(mc, 2*time.Second)
}

func TokenOptions(cfg *config.Config) common.TokenOptions {
	return common.TokenOptions{
		Secret: []byte(cfg.Auth.JWTSecret),
		Issuer: cfg.Auth.Issuer,
		TTL:    cfg.Auth.TokenTTL,
	}
}
