package subscription

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"vidtube/internal/common"
	"vidtube/internal/dbmongo"
	"vidtube/internal/pagination"
)

var Sortable = pagination.NewSortable()

func userJoin(field string) pagination.Join {
	return pagination.Join{
		From:         dbmongo.UsersCollection,
		LocalField:   field,
		ForeignField: "_id",
		As:           field,
		Project:      dbmongo.UserRefFields,
	}
}

type Repository interface {
	UserExists(ctx context.Context, id primitive.ObjectID) (bool, error)
	Remove(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error)
	// Add reports false without error when the subscription already exists.
	Add(ctx context.Context, s *dbmongo.Subscription) (bool, error)
	Subscribers(ctx context.Context, channel primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.SubscriberEntry], error)
	Channels(ctx context.Context, subscriber primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.ChannelEntry], error)
}

type mongoRepository struct {
	subscriptions *mongo.Collection
	users         *mongo.Collection
	timeout       time.Duration
}

func NewRepository(mc *dbmongo.MongoClient) Repository {
	return &mongoRepository{
		subscriptions: mc.Collection(dbmongo.SubscriptionsCollection),
		users:         mc.Collection(dbmongo.UsersCollection),
		timeout:       mc.OpTimeout,
	}
}

func (r *mongoRepository) UserExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()
	return dbmongo.Exists(ctx, r.users, id)
}

func (r *mongoRepository) Remove(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.subscriptions.DeleteOne(ctx, bson.D{
		{Key: "subscriber", Value: subscriber},
		{Key: "channel", Value: channel},
	})
	if err != nil {
		return false, common.NewUpstreamError("failed to unsubscribe", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *mongoRepository) Add(ctx context.Context, s *dbmongo.Subscription) (bool, error) {
	if err := s.Validate(); err != nil {
		return false, common.NewValidationError(err.Error())
	}
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.subscriptions.InsertOne(ctx, s)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, common.NewUpstreamError("failed to subscribe", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid
	}
	return true, nil
}

func (r *mongoRepository) Subscribers(ctx context.Context, channel primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.SubscriberEntry], error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()
	return pagination.Run[dbmongo.SubscriberEntry](ctx, r.subscriptions, pagination.Query{
		Filter:  pagination.And(pagination.Eq("channel", channel)),
		Joins:   []pagination.Join{userJoin("subscriber")},
		Project: []string{"createdAt"},
		Page:    page,
	})
}

func (r *mongoRepository) Channels(ctx context.Context, subscriber primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.ChannelEntry], error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()
	return pagination.Run[dbmongo.ChannelEntry](ctx, r.subscriptions, pagination.Query{
		Filter:  pagination.And(pagination.Eq("subscriber", subscriber)),
		Joins:   []pagination.Join{userJoin("channel")},
		Project: []string{"createdAt"},
		Page:    page,
	})
}
