package like

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

type Repository interface {
	// TargetExists treats someone else's unpublished video as missing.
	TargetExists(ctx context.Context, target dbmongo.LikeTarget, id, actor primitive.ObjectID) (bool, error)
	// Remove deletes actor's like on the target and reports whether one existed.
	Remove(ctx context.Context, target dbmongo.LikeTarget, id, actor primitive.ObjectID) (bool, error)
	// Add inserts l. It reports false without error when the like already
	// exists.
	Add(ctx context.Context, l *dbmongo.Like) (bool, error)
	// LikedVideos leaves the video out of entries the viewer may not see.
	LikedVideos(ctx context.Context, userID, viewer primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.LikedVideo], error)
}

type mongoRepository struct {
	db      *mongo.Database
	likes   *mongo.Collection
	timeout time.Duration
}

func NewRepository(mc *dbmongo.MongoClient) Repository {
	return &mongoRepository{
		db:      mc.Database,
		likes:   mc.Collection(dbmongo.LikesCollection),
		timeout: mc.OpTimeout,
	}
}

func targetCollection(target dbmongo.LikeTarget) string {
	switch target {
	case dbmongo.LikeTargetVideo:
		return dbmongo.VideosCollection
	case dbmongo.LikeTargetComment:
		return dbmongo.CommentsCollection
	default:
		return dbmongo.TweetsCollection
	}
}

func (r *mongoRepository) TargetExists(ctx context.Context, target dbmongo.LikeTarget, id, actor primitive.ObjectID) (bool, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()
	if target == dbmongo.LikeTargetVideo {
		return dbmongo.VideoVisible(ctx, r.db.Collection(dbmongo.VideosCollection), id, actor)
	}
	return dbmongo.Exists(ctx, r.db.Collection(targetCollection(target)), id)
}

func (r *mongoRepository) Remove(ctx context.Context, target dbmongo.LikeTarget, id, actor primitive.ObjectID) (bool, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.likes.DeleteOne(ctx, bson.D{
		{Key: "likedBy", Value: actor},
		{Key: string(target), Value: id},
	})
	if err != nil {
		return false, common.NewUpstreamError("failed to remove like", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *mongoRepository) Add(ctx context.Context, l *dbmongo.Like) (bool, error) {
	if err := l.Validate(); err != nil {
		return false, common.NewValidationError(err.Error())
	}
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.likes.InsertOne(ctx, l)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, common.NewUpstreamError("failed to add like", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		l.ID = oid
	}
	return true, nil
}

func (r *mongoRepository) LikedVideos(ctx context.Context, userID, viewer primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.LikedVideo], error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()
	return pagination.Run[dbmongo.LikedVideo](ctx, r.likes, pagination.Query{
		Filter: pagination.And(
			pagination.Eq("likedBy", userID),
			pagination.Eq("video", bson.D{{Key: "$exists", Value: true}}),
		),
		Joins: []pagination.Join{{
			From:         dbmongo.VideosCollection,
			LocalField:   "video",
			ForeignField: "_id",
			As:           "video",
			Project:      dbmongo.VideoSummaryFields,
			Match:        dbmongo.VisibleVideo(viewer),
		}},
		Page: page,
	})
}
