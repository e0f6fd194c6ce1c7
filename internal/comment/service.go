package comment

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

type Service interface {
	ListComments(ctx context.Context, videoID primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.CommentDetails], error)
	AddComment(ctx context.Context, actor, videoID primitive.ObjectID, content string) (*dbmongo.Comment, error)
	UpdateComment(ctx context.Context, actor, videoID, commentID primitive.ObjectID, content string) (*dbmongo.Comment, error)
	DeleteComment(ctx context.Context, actor, videoID, commentID primitive.ObjectID) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) ListComments(ctx context.Context, videoID primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.CommentDetails], error) {
	if err := s.requireVideo(ctx, videoID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, videoID, page)
}

func (s *service) AddComment(ctx context.Context, actor, videoID primitive.ObjectID, content string) (*dbmongo.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, common.NewValidationError("Comment content is required")
	}
	if err := s.requireVideo(ctx, videoID); err != nil {
		return nil, err
	}

	now := s.now()
	c := &dbmongo.Comment{
		Content:   content,
		Video:     videoID,
		Owner:     actor,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) UpdateComment(ctx context.Context, actor, videoID, commentID primitive.ObjectID, content string) (*dbmongo.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, common.NewValidationError("Comment content is required")
	}
	if _, err := s.owned(ctx, actor, videoID, commentID); err != nil {
		return nil, err
	}
	return s.repo.UpdateContent(ctx, commentID, content)
}

func (s *service) DeleteComment(ctx context.Context, actor, videoID, commentID primitive.ObjectID) error {
	if _, err := s.owned(ctx, actor, videoID, commentID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, commentID)
}

func (s *service) requireVideo(ctx context.Context, videoID primitive.ObjectID) error {
	ok, err := s.repo.VideoExists(ctx, videoID)
	if err != nil {
		return err
	}
	if !ok {
		return common.NewNotFoundError("Video not found")
	}
	return nil
}

// owned loads the comment, checks it sits under videoID and that actor wrote it.
func (s *service) owned(ctx context.Context, actor, videoID, commentID primitive.ObjectID) (*dbmongo.Comment, error) {
	c, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.Video != videoID {
		return nil, common.NewNotFoundError("Comment not found")
	}
	if err := guard.CheckResource(c, actor); err != nil {
		return nil, err
	}
	return c, nil
}
