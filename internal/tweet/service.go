package tweet

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/common"
	"vidtube/internal/dbmongo"
	"vidtube/internal/guard"
	"vidtube/internal/pagination"
)

// tweets longer than this are rejected
const MaxContentLength = 280

type Service interface {
	CreateTweet(ctx context.Context, actor primitive.ObjectID, content string) (*dbmongo.Tweet, error)
	UserTweets(ctx context.Context, userID primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.TweetDetails], error)
	UpdateTweet(ctx context.Context, actor, tweetID primitive.ObjectID, content string) (*dbmongo.Tweet, error)
	DeleteTweet(ctx context.Context, actor, tweetID primitive.ObjectID) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func validContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", common.NewValidationError("Tweet content is required")
	}
	if len([]rune(content)) > MaxContentLength {
		return "", common.NewValidationError("Tweet content is too long")
	}
	return content, nil
}

func (s *service) CreateTweet(ctx context.Context, actor primitive.ObjectID, content string) (*dbmongo.Tweet, error) {
	content, err := validContent(content)
	if err != nil {
		return nil, err
	}
	now := s.now()
	t := &dbmongo.Tweet{Content: content, Owner: actor, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) UserTweets(ctx context.Context, userID primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.TweetDetails], error) {
	return s.repo.ListByOwner(ctx, userID, page)
}

func (s *service) UpdateTweet(ctx context.Context, actor, tweetID primitive.ObjectID, content string) (*dbmongo.Tweet, error) {
	content, err := validContent(content)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, actor, tweetID); err != nil {
		return nil, err
	}
	return s.repo.UpdateContent(ctx, tweetID, content)
}

func (s *service) DeleteTweet(ctx context.Context, actor, tweetID primitive.ObjectID) error {
	if err := s.checkOwner(ctx, actor, tweetID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, tweetID)
}

func (s *service) checkOwner(ctx context.Context, actor, tweetID primitive.ObjectID) error {
	t, err := s.repo.FindByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if t == nil {
		return common.NewNotFoundError("Tweet not found")
	}
	return guard.CheckResource(t, actor)
}
