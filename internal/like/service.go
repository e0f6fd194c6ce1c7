// Package like toggles likes on videos, comments and tweets.
package like

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/common"
	"vidtube/internal/dbmongo"
	"vidtube/internal/pagination"
)

type Action string

const (
	Liked   Action = "liked"
	Unliked Action = "unliked"
)

// ToggleResult is what a toggle converged to.
type ToggleResult struct {
	Action  Action `json:"action"`
	IsLiked bool   `json:"isLiked"`
}

type Service interface {
	Toggle(ctx context.Context, actor primitive.ObjectID, target dbmongo.LikeTarget, id primitive.ObjectID) (*ToggleResult, error)
	LikedVideos(ctx context.Context, viewer, userID primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.LikedVideo], error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

var notFound = map[dbmongo.LikeTarget]string{
	dbmongo.LikeTargetVideo:   "Video not found",
	dbmongo.LikeTargetComment: "Comment not found",
	dbmongo.LikeTargetTweet:   "Tweet not found",
}

// Toggle removes actor's like if present, otherwise adds one. The unique
// index on (likedBy, target) makes a lost insert race report "liked", which
// is the state the store converged to.
func (s *service) Toggle(ctx context.Context, actor primitive.ObjectID, target dbmongo.LikeTarget, id primitive.ObjectID) (*ToggleResult, error) {
	if !target.IsValid() {
		return nil, common.NewValidationError("Invalid like target")
	}
	ok, err := s.repo.TargetExists(ctx, target, id, actor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.NewNotFoundError(notFound[target])
	}

	removed, err := s.repo.Remove(ctx, target, id, actor)
	if err != nil {
		return nil, err
	}
	if removed {
		return &ToggleResult{Action: Unliked}, nil
	}

	inserted, err := s.repo.Add(ctx, dbmongo.NewLike(target, id, actor, s.now()))
	if err != nil {
		return nil, err
	}
	if !inserted {
		log.Debug().Str("target", string(target)).Str("id", id.Hex()).Msg("concurrent like already recorded")
	}
	return &ToggleResult{Action: Liked, IsLiked: true}, nil
}

func (s *service) LikedVideos(ctx context.Context, viewer, userID primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.LikedVideo], error) {
	return s.repo.LikedVideos(ctx, userID, viewer, page)
}
