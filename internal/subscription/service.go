package subscription

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/common"
	"vidtube/internal/dbmongo"
	"vidtube/internal/pagination"
)

type Action string

const (
	Subscribed   Action = "subscribed"
	Unsubscribed Action = "unsubscribed"
)

type ToggleResult struct {
	Action       Action `json:"action"`
	IsSubscribed bool   `json:"isSubscribed"`
}

type Service interface {
	Toggle(ctx context.Context, actor, channel primitive.ObjectID) (*ToggleResult, error)
	Subscribers(ctx context.Context, channel primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.SubscriberEntry], error)
	Channels(ctx context.Context, subscriber primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.ChannelEntry], error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// Toggle follows the same remove-then-insert scheme as likes; the unique
// (subscriber, channel) index settles concurrent inserts.
func (s *service) Toggle(ctx context.Context, actor, channel primitive.ObjectID) (*ToggleResult, error) {
	if actor == channel {
		return nil, common.NewValidationError("You cannot subscribe to your own channel")
	}
	if err := s.requireUser(ctx, channel, "Channel not found"); err != nil {
		return nil, err
	}

	removed, err := s.repo.Remove(ctx, actor, channel)
	if err != nil {
		return nil, err
	}
	if removed {
		return &ToggleResult{Action: Unsubscribed}, nil
	}

	now := s.now()
	if _, err := s.repo.Add(ctx, &dbmongo.Subscription{
		Subscriber: actor,
		Channel:    channel,
		CreatedAt:  now,
		UpdatedAt:  now,
	}); err != nil {
		return nil, err
	}
	return &ToggleResult{Action: Subscribed, IsSubscribed: true}, nil
}

func (s *service) Subscribers(ctx context.Context, channel primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.SubscriberEntry], error) {
	if err := s.requireUser(ctx, channel, "Channel not found"); err != nil {
		return nil, err
	}
	return s.repo.Subscribers(ctx, channel, page)
}

func (s *service) Channels(ctx context.Context, subscriber primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.ChannelEntry], error) {
	if err := s.requireUser(ctx, subscriber, "User not found"); err != nil {
		return nil, err
	}
	return s.repo.Channels(ctx, subscriber, page)
}

func (s *service) requireUser(ctx context.Context, id primitive.ObjectID, msg string) error {
	ok, err := s.repo.UserExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return common.NewNotFoundError(msg)
	}
	return nil
}
