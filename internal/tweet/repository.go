package tweet

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vidtube/internal/common"
	"vidtube/internal/dbmongo"
	"vidtube/internal/pagination"
)

var Sortable = pagination.NewSortable("updatedAt")

type Repository interface {
	Create(ctx context.Context, t *dbmongo.Tweet) error
	// FindByID returns nil, nil when the tweet does not exist.
	FindByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.Tweet, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.TweetDetails], error)
	UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*dbmongo.Tweet, error)
	// Delete removes the tweet and the likes on it.
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoRepository struct {
	tweets  *mongo.Collection
	likes   *mongo.Collection
	timeout time.Duration
}

func NewRepository(mc *dbmongo.MongoClient) Repository {
	return &mongoRepository{
		tweets:  mc.Collection(dbmongo.TweetsCollection),
		likes:   mc.Collection(dbmongo.LikesCollection),
		timeout: mc.OpTimeout,
	}
}

func (r *mongoRepository) Create(ctx context.Context, t *dbmongo.Tweet) error {
	if err := t.Validate(); err != nil {
		return common.NewValidationError(err.Error())
	}
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.tweets.InsertOne(ctx, t)
	if err != nil {
		return common.NewUpstreamError("failed to create tweet", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid
	}
	return nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.Tweet, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	var t dbmongo.Tweet
	if err := r.tweets.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, common.NewUpstreamError("failed to load tweet", err)
	}
	return &t, nil
}

func (r *mongoRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.TweetDetails], error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()
	return pagination.Run[dbmongo.TweetDetails](ctx, r.tweets, pagination.Query{
		Filter: pagination.And(pagination.Eq("owner", owner)),
		Joins: []pagination.Join{{
			From:         dbmongo.UsersCollection,
			LocalField:   "owner",
			ForeignField: "_id",
			As:           "owner",
			Project:      dbmongo.UserRefFields,
		}},
		Page: page,
	})
}

func (r *mongoRepository) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*dbmongo.Tweet, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "content", Value: content},
		{Key: "updatedAt", Value: time.Now()},
	}}}
	var t dbmongo.Tweet
	err := r.tweets.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NewNotFoundError("Tweet not found")
		}
		return nil, common.NewUpstreamError("failed to update tweet", err)
	}
	return &t, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.tweets.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return common.NewUpstreamError("failed to delete tweet", err)
	}
	if res.DeletedCount == 0 {
		return common.NewNotFoundError("Tweet not found")
	}
	if _, err := r.likes.DeleteMany(ctx, bson.D{{Key: "tweet", Value: id}}); err != nil {
		log.Warn().Err(err).Str("tweetId", id.Hex()).Msg("tweet likes not removed")
	}
	return nil
}
