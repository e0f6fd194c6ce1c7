package comment

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
	List(ctx context.Context, videoID primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.CommentDetails], error)
	// FindByID returns nil, nil when the comment does not exist.
	FindByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.Comment, error)
	VideoExists(ctx context.Context, videoID primitive.ObjectID) (bool, error)
	Create(ctx context.Context, c *dbmongo.Comment) error
	UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*dbmongo.Comment, error)
	// Delete removes the comment and the likes on it.
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoRepository struct {
	comments *mongo.Collection
	videos   *mongo.Collection
	likes    *mongo.Collection
	timeout  time.Duration
}

func NewRepository(mc *dbmongo.MongoClient) Repository {
	return &mongoRepository{
		comments: mc.Collection(dbmongo.CommentsCollection),
		videos:   mc.Collection(dbmongo.VideosCollection),
		likes:    mc.Collection(dbmongo.LikesCollection),
		timeout:  mc.OpTimeout,
	}
}

func (r *mongoRepository) List(ctx context.Context, videoID primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.CommentDetails], error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()
	return pagination.Run[dbmongo.CommentDetails](ctx, r.comments, pagination.Query{
		Filter: pagination.And(pagination.Eq("video", videoID)),
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

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.Comment, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	var c dbmongo.Comment
	if err := r.comments.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, common.NewUpstreamError("failed to load comment", err)
	}
	return &c, nil
}

func (r *mongoRepository) VideoExists(ctx context.Context, videoID primitive.ObjectID) (bool, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()
	return dbmongo.Exists(ctx, r.videos, videoID)
}

func (r *mongoRepository) Create(ctx context.Context, c *dbmongo.Comment) error {
	if err := c.Validate(); err != nil {
		return common.NewValidationError(err.Error())
	}
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.comments.InsertOne(ctx, c)
	if err != nil {
		return common.NewUpstreamError("failed to add comment", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return nil
}

func (r *mongoRepository) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*dbmongo.Comment, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "content", Value: content},
		{Key: "updatedAt", Value: time.Now()},
	}}}
	var c dbmongo.Comment
	err := r.comments.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NewNotFoundError("Comment not found")
		}
		return nil, common.NewUpstreamError("failed to update comment", err)
	}
	return &c, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.comments.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return common.NewUpstreamError("failed to delete comment", err)
	}
	if res.DeletedCount == 0 {
		return common.NewNotFoundError("Comment not found")
	}
	if _, err := r.likes.DeleteMany(ctx, bson.D{{Key: "comment", Value: id}}); err != nil {
		log.Warn().Err(err).Str("commentId", id.Hex()).Msg("comment likes not removed")
	}
	return nil
}
