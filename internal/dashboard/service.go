// Package dashboard reports channel statistics and lists a channel's videos.
package dashboard

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"vidtube/internal/common"
	"vidtube/internal/dbmongo"
	"vidtube/internal/pagination"
)

type ChannelStats struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
	TotalComments    int64 `json:"totalComments"`
}

// Cache holds recently computed stats. *cache.JSONCache satisfies it.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{})
}

type Service interface {
	Stats(ctx context.Context, channel primitive.ObjectID) (*ChannelStats, error)
	ChannelVideos(ctx context.Context, actor, channel primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.VideoSummary], error)
}

type service struct {
	repo  Repository
	cache Cache
}

func NewService(repo Repository, cache Cache) Service {
	return &service{repo: repo, cache: cache}
}

func (s *service) Stats(ctx context.Context, channel primitive.ObjectID) (*ChannelStats, error) {
	key := channel.Hex()
	var cached ChannelStats
	if s.cache != nil && s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}
	if err := s.requireChannel(ctx, channel); err != nil {
		return nil, err
	}

	var stats ChannelStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		videos, views, err := s.repo.VideoTotals(gctx, channel)
		stats.TotalVideos, stats.TotalViews = videos, views
		return err
	})
	g.Go(func() error {
		n, err := s.repo.SubscriberCount(gctx, channel)
		stats.TotalSubscribers = n
		return err
	})
	g.Go(func() error {
		ids, err := s.repo.VideoIDs(gctx, channel)
		if err != nil {
			return err
		}
		inner, ictx := errgroup.WithContext(gctx)
		inner.Go(func() error {
			n, err := s.repo.LikeCount(ictx, ids)
			stats.TotalLikes = n
			return err
		})
		inner.Go(func() error {
			n, err := s.repo.CommentCount(ictx, ids)
			stats.TotalComments = n
			return err
		})
		return inner.Wait()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, stats)
	}
	return &stats, nil
}

// ChannelVideos lists every video of the caller's own channel, and only the
// published ones of anyone else's.
func (s *service) ChannelVideos(ctx context.Context, actor, channel primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.VideoSummary], error) {
	if err := s.requireChannel(ctx, channel); err != nil {
		return nil, err
	}
	return s.repo.ChannelVideos(ctx, channel, actor != channel, page)
}

func (s *service) requireChannel(ctx context.Context, channel primitive.ObjectID) error {
	ok, err := s.repo.ChannelExists(ctx, channel)
	if err != nil {
		return err
	}
	if !ok {
		return common.NewNotFoundError("Channel not found")
	}
	return nil
}
