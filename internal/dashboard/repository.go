package dashboard

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

var Sortable = pagination.NewSortable("updatedAt", "title", "views", "duration")

type Repository interface {
	ChannelExists(ctx context.Context, channel primitive.ObjectID) (bool, error)
	// VideoTotals returns the number of videos and the sum of their views.
	VideoTotals(ctx context.Context, channel primitive.ObjectID) (videos, views int64, err error)
	SubscriberCount(ctx context.Context, channel primitive.ObjectID) (int64, error)
	VideoIDs(ctx context.Context, channel primitive.ObjectID) ([]primitive.ObjectID, error)
	LikeCount(ctx context.Context, videoIDs []primitive.ObjectID) (int64, error)
	CommentCount(ctx context.Context, videoIDs []primitive.ObjectID) (int64, error)
	ChannelVideos(ctx context.Context, channel primitive.ObjectID, publishedOnly bool, page pagination.PageRequest) (*pagination.PageResult[dbmongo.VideoSummary], error)
}

type mongoRepository struct {
	users         *mongo.Collection
	videos        *mongo.Collection
	subscriptions *mongo.Collection
	likes         *mongo.Collection
	comments      *mongo.Collection
	timeout       time.Duration
}

func NewRepository(mc *dbmongo.MongoClient) Repository {
	return &mongoRepository{
		users:         mc.Collection(dbmongo.UsersCollection),
		videos:        mc.Collection(dbmongo.VideosCollection),
		subscriptions: mc.Collection(dbmongo.SubscriptionsCollection),
		likes:         mc.Collection(dbmongo.LikesCollection),
		comments:      mc.Collection(dbmongo.CommentsCollection),
		timeout:       mc.OpTimeout,
	}
}

func (r *mongoRepository) ChannelExists(ctx context.Context, channel primitive.ObjectID) (bool, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()
	return dbmongo.Exists(ctx, r.users, channel)
}

func (r *mongoRepository) VideoTotals(ctx context.Context, channel primitive.ObjectID) (int64, int64, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	cur, err := r.videos.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "owner", Value: channel}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "videos", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "views", Value: bson.D{{Key: "$sum", Value: "$views"}}},
		}}},
	})
	if err != nil {
		return 0, 0, common.NewUpstreamError("failed to total videos", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Videos int64 `bson:"videos"`
		Views  int64 `bson:"views"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, 0, common.NewUpstreamError("failed to total videos", err)
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return rows[0].Videos, rows[0].Views, nil
}

func (r *mongoRepository) SubscriberCount(ctx context.Context, channel primitive.ObjectID) (int64, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()
	n, err := r.subscriptions.CountDocuments(ctx, bson.D{{Key: "channel", Value: channel}})
	if err != nil {
		return 0, common.NewUpstreamError("failed to count subscribers", err)
	}
	return n, nil
}

func (r *mongoRepository) VideoIDs(ctx context.Context, channel primitive.ObjectID) ([]primitive.ObjectID, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()
	raw, err := r.videos.Distinct(ctx, "_id", bson.D{{Key: "owner", Value: channel}})
	if err != nil {
		return nil, common.NewUpstreamError("failed to list channel videos", err)
	}
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *mongoRepository) LikeCount(ctx context.Context, videoIDs []primitive.ObjectID) (int64, error) {
	return r.countByVideo(ctx, r.likes, videoIDs, "failed to count likes")
}

func (r *mongoRepository) CommentCount(ctx context.Context, videoIDs []primitive.ObjectID) (int64, error) {
	return r.countByVideo(ctx, r.comments, videoIDs, "failed to count comments")
}

func (r *mongoRepository) countByVideo(ctx context.Context, coll *mongo.Collection, videoIDs []primitive.ObjectID, msg string) (int64, error) {
	if len(videoIDs) == 0 {
		return 0, nil
	}
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()
	n, err := coll.CountDocuments(ctx, bson.D{{Key: "video", Value: bson.D{{Key: "$in", Value: videoIDs}}}})
	if err != nil {
		return 0, common.NewUpstreamError(msg, err)
	}
	return n, nil
}

func (r *mongoRepository) ChannelVideos(ctx context.Context, channel primitive.ObjectID, publishedOnly bool, page pagination.PageRequest) (*pagination.PageResult[dbmongo.VideoSummary], error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	conds := []bson.E{pagination.Eq("owner", channel)}
	if publishedOnly {
		conds = append(conds, pagination.Eq("isPublished", true))
	}
	return pagination.Run[dbmongo.VideoSummary](ctx, r.videos, pagination.Query{
		Filter: pagination.And(conds...),
		Page:   page,
	})
}
