package user

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"vidtube/internal/common"
	"vidtube/internal/dbmongo"
)

// ErrUserExists is returned by Create when the username or email is taken.
var ErrUserExists = errors.New("user already exists")

type Repository interface {
	CreateUser(ctx context.Context, user *dbmongo.User) error
	CheckUserExists(ctx context.Context, username, email string) (bool, error)
	// ChannelProfile returns nil when no user has the username.
	ChannelProfile(ctx context.Context, username string, viewer primitive.ObjectID) (*ChannelProfile, error)
}

type mongoRepository struct {
	users   *mongo.Collection
	timeout time.Duration
}

func NewRepository(mc *dbmongo.MongoClient) Repository {
	return &mongoRepository{
		users:   mc.Collection(dbmongo.UsersCollection),
		timeout: mc.OpTimeout,
	}
}

func (r *mongoRepository) CreateUser(ctx context.Context, user *dbmongo.User) error {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrUserExists
		}
		return common.NewUpstreamError("failed to create user", err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) CheckUserExists(ctx context.Context, username, email string) (bool, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "username", Value: username}},
		bson.D{{Key: "email", Value: email}},
	}}}
	n, err := r.users.CountDocuments(ctx, filter)
	if err != nil {
		return false, common.NewUpstreamError("failed to look up users", err)
	}
	return n > 0, nil
}

// profilePipeline joins both sides of the subscriptions collection onto one
// user and reduces them to counts. A zero viewer never matches a subscriber.
func profilePipeline(username string, viewer primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "username", Value: username}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: dbmongo.SubscriptionsCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "channel"},
			{Key: "as", Value: "subscribers"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: dbmongo.SubscriptionsCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "subscriber"},
			{Key: "as", Value: "subscribedTo"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "username", Value: 1},
			{Key: "fullName", Value: 1},
			{Key: "avatar", Value: 1},
			{Key: "coverImage", Value: 1},
			{Key: "email", Value: 1},
			{Key: "subscribersCount", Value: bson.D{{Key: "$size", Value: "$subscribers"}}},
			{Key: "channelsSubscribedToCount", Value: bson.D{{Key: "$size", Value: "$subscribedTo"}}},
			{Key: "isSubscribed", Value: bson.D{{Key: "$in", Value: bson.A{viewer, "$subscribers.subscriber"}}}},
		}}},
		{{Key: "$limit", Value: 1}},
	}
}

func (r *mongoRepository) ChannelProfile(ctx context.Context, username string, viewer primitive.ObjectID) (*ChannelProfile, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.users.Aggregate(ctx, profilePipeline(username, viewer))
	if err != nil {
		return nil, common.NewUpstreamError("failed to load channel", err)
	}
	defer cursor.Close(ctx)

	var profiles []ChannelProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, common.NewUpstreamError("failed to load channel", err)
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return &profiles[0], nil
}
