// Package user serves public channel profiles and seeds operator accounts.
package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/common"
	"vidtube/internal/dbmongo"
)

type ChannelProfile struct {
	ID                        primitive.ObjectID `bson:"_id" json:"_id"`
	Username                  string             `bson:"username" json:"username"`
	FullName                  string             `bson:"fullName" json:"fullName"`
	Email                     string             `bson:"email" json:"email"`
	Avatar                    string             `bson:"avatar" json:"avatar"`
	CoverImage                string             `bson:"coverImage" json:"coverImage"`
	SubscribersCount          int64              `bson:"subscribersCount" json:"subscribersCount"`
	ChannelsSubscribedToCount int64              `bson:"channelsSubscribedToCount" json:"channelsSubscribedToCount"`
	IsSubscribed              bool               `bson:"isSubscribed" json:"isSubscribed"`
}

type SeedInput struct {
	Username string
	Email    string
	FullName string
	Password string
	Avatar   string
}

type Service interface {
	// ChannelProfile resolves a channel by username; viewer may be the zero
	// id for anonymous callers.
	ChannelProfile(ctx context.Context, viewer primitive.ObjectID, username string) (*ChannelProfile, error)
	RegisterUser(ctx context.Context, in SeedInput) (*dbmongo.User, string, error)
}

type service struct {
	repo       Repository
	tokens     common.TokenOptions
	bcryptCost int
	now        func() time.Time
}

func NewService(repo Repository, tokens common.TokenOptions, bcryptCost int) Service {
	return &service{repo: repo, tokens: tokens, bcryptCost: bcryptCost, now: time.Now}
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (s *service) ChannelProfile(ctx context.Context, viewer primitive.ObjectID, username string) (*ChannelProfile, error) {
	username = normalizeUsername(username)
	if username == "" {
		return nil, common.NewValidationError("username is missing")
	}
	profile, err := s.repo.ChannelProfile(ctx, username, viewer)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, common.NewNotFoundError("Channel does not exist")
	}
	return profile, nil
}

func (s *service) RegisterUser(ctx context.Context, in SeedInput) (*dbmongo.User, string, error) {
	username := normalizeUsername(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if err := common.RequireFields(map[string]string{
		"username": username,
		"email":    email,
		"fullName": in.FullName,
		"password": in.Password,
	}); err != nil {
		return nil, "", err
	}
	if err := common.ValidateUsername(username); err != nil {
		return nil, "", err
	}
	if err := common.ValidateEmail(email); err != nil {
		return nil, "", err
	}
	if err := common.ValidatePassword(in.Password); err != nil {
		return nil, "", err
	}

	exists, err := s.repo.CheckUserExists(ctx, username, email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", common.NewConflictError("User with email or username already exists")
	}

	hashed, err := common.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	now := s.now()
	user := &dbmongo.User{
		Username:     username,
		Email:        email,
		FullName:     strings.TrimSpace(in.FullName),
		Avatar:       in.Avatar,
		Password:     hashed,
		WatchHistory: []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrUserExists) {
			return nil, "", common.NewConflictError("User with email or username already exists")
		}
		return nil, "", err
	}

	token, err := common.GenerateToken(s.tokens, user.ID.Hex(), user.Username)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
