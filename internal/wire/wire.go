//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"vidtube/internal/cache"
	"vidtube/internal/comment"
	"vidtube/internal/config"
	"vidtube/internal/dashboard"
	"vidtube/internal/dbmongo"
	"vidtube/internal/like"
	"vidtube/internal/media"
	"vidtube/internal/playlist"
	"vidtube/internal/subscription"
	"vidtube/internal/tweet"
	"vidtube/internal/user"
	"vidtube/internal/video"
)

var infraSet = wire.NewSet(
	ProvideDatabaseConnection,
	ProvideRedis,
	ProvideCleanupPublisher,
	dbmongo.NewMediaStorage,
	ProvideMediaHost,
	ProvideStatsCache,
	ProvideLimiter,
	wire.Bind(new(video.MediaHost), new(*media.Host)),
	wire.Bind(new(dashboard.Cache), new(*cache.JSONCache)),
)

var apiSet = wire.NewSet(
	ProvideHealthHandler,
	user.NewRepository, ProvideUserService, user.NewHandler,
	video.NewRepository, video.NewService, ProvideVideoHandler,
	comment.NewRepository, comment.NewService, comment.NewHandler,
	like.NewRepository, like.NewService, like.NewHandler,
	subscription.NewRepository, subscription.NewService, subscription.NewHandler,
	playlist.NewRepository, playlist.NewService, playlist.NewHandler,
	tweet.NewRepository, tweet.NewService, tweet.NewHandler,
	dashboard.NewRepository, dashboard.NewService, dashboard.NewHandler,
	wire.Struct(new(Handlers), "*"),
	NewRouter,
)

// InitializeApplication builds the API; the returned func releases every
// connection it opened.
func InitializeApplication(cfg *config.Config) (*Application, func(), error) {
	wire.Build(
		infraSet,
		apiSet,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil, nil
}
