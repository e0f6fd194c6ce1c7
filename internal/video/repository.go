package video

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

// Sortable lists the fields a video listing may be sorted by.
var Sortable = pagination.NewSortable("updatedAt", "title", "views", "duration")

var ownerJoin = pagination.Join{
	From:         dbmongo.UsersCollection,
	LocalField:   "owner",
	ForeignField: "_id",
	As:           "owner",
	Project:      dbmongo.UserRefFields,
}

// ListFilter narrows a video listing.
type ListFilter struct {
	Owner         primitive.ObjectID
	Title         string
	PublishedOnly bool
}

func (f ListFilter) bson() bson.D {
	conds := []bson.E{
		pagination.Eq("owner", f.Owner),
		pagination.ContainsFold("title", f.Title),
	}
	if f.PublishedOnly {
		conds = append(conds, pagination.Eq("isPublished", true))
	}
	return pagination.And(conds...)
}

// Changes holds the fields an update may set; nil fields are left alone.
type Changes struct {
	Title       *string
	Description *string
	VideoFile   *FileRef
	Thumbnail   *FileRef
}

// FileRef points at a file on the media host.
type FileRef struct {
	URL    string
	FileID string
}

func (c Changes) Empty() bool {
	return c.Title == nil && c.Description == nil && c.VideoFile == nil && c.Thumbnail == nil
}

func (c Changes) set(now time.Time) bson.D {
	set := bson.D{{Key: "updatedAt", Value: now}}
	if c.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *c.Title})
	}
	if c.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *c.Description})
	}
	if c.VideoFile != nil {
		set = append(set, bson.E{Key: "videoFile", Value: c.VideoFile.URL}, bson.E{Key: "videoFileId", Value: c.VideoFile.FileID})
	}
	if c.Thumbnail != nil {
		set = append(set, bson.E{Key: "thumbnail", Value: c.Thumbnail.URL}, bson.E{Key: "thumbnailId", Value: c.Thumbnail.FileID})
	}
	return set
}

type Repository interface {
	List(ctx context.Context, filter ListFilter, page pagination.PageRequest) (*pagination.PageResult[dbmongo.VideoDetails], error)
	// FindByID returns nil, nil when the video does not exist.
	FindByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.Video, error)
	Details(ctx context.Context, id primitive.ObjectID) (*dbmongo.VideoDetails, error)
	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	Create(ctx context.Context, v *dbmongo.Video) error
	Update(ctx context.Context, id primitive.ObjectID, changes Changes) (*dbmongo.Video, error)
	TogglePublished(ctx context.Context, id primitive.ObjectID) (*dbmongo.Video, error)
	// Delete removes the video with its comments, likes and playlist entries.
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoRepository struct {
	db      *mongo.Database
	videos  *mongo.Collection
	timeout time.Duration
}

func NewRepository(mc *dbmongo.MongoClient) Repository {
	return &mongoRepository{
		db:      mc.Database,
		videos:  mc.Collection(dbmongo.VideosCollection),
		timeout: mc.OpTimeout,
	}
}

func (r *mongoRepository) List(ctx context.Context, filter ListFilter, page pagination.PageRequest) (*pagination.PageResult[dbmongo.VideoDetails], error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()
	return pagination.Run[dbmongo.VideoDetails](ctx, r.videos, pagination.Query{
		Filter: filter.bson(),
		Joins:  []pagination.Join{ownerJoin},
		Page:   page,
	})
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.Video, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	var v dbmongo.Video
	if err := r.videos.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, common.NewUpstreamError("failed to load video", err)
	}
	return &v, nil
}

func (r *mongoRepository) Details(ctx context.Context, id primitive.ObjectID) (*dbmongo.VideoDetails, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()
	return pagination.First[dbmongo.VideoDetails](ctx, r.videos, pagination.Query{
		Filter: pagination.And(pagination.Eq("_id", id)),
		Joins:  []pagination.Join{ownerJoin},
	})
}

func (r *mongoRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()
	_, err := r.videos.UpdateByID(ctx, id, bson.D{{Key: "$inc", Value: bson.D{{Key: "views", Value: 1}}}})
	if err != nil {
		return common.NewUpstreamError("failed to count view", err)
	}
	return nil
}

func (r *mongoRepository) Create(ctx context.Context, v *dbmongo.Video) error {
	if err := v.Validate(); err != nil {
		return common.NewValidationError(err.Error())
	}
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.videos.InsertOne(ctx, v)
	if err != nil {
		return common.NewUpstreamError("failed to create video", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		v.ID = oid
	}
	return nil
}

func (r *mongoRepository) Update(ctx context.Context, id primitive.ObjectID, changes Changes) (*dbmongo.Video, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()
	return r.findOneAndUpdate(ctx, id, bson.D{{Key: "$set", Value: changes.set(time.Now())}})
}

// TogglePublished flips the flag server-side so concurrent toggles cannot
// both read the same value.
func (r *mongoRepository) TogglePublished(ctx context.Context, id primitive.ObjectID) (*dbmongo.Video, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()
	update := mongo.Pipeline{{{Key: "$set", Value: bson.D{
		{Key: "isPublished", Value: bson.D{{Key: "$not", Value: bson.A{"$isPublished"}}}},
		{Key: "updatedAt", Value: "$$NOW"},
	}}}}
	return r.findOneAndUpdate(ctx, id, update)
}

func (r *mongoRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update interface{}) (*dbmongo.Video, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var v dbmongo.Video
	err := r.videos.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NewNotFoundError("Video not found")
		}
		return nil, common.NewUpstreamError("failed to update video", err)
	}
	return &v, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.videos.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return common.NewUpstreamError("failed to delete video", err)
	}
	if res.DeletedCount == 0 {
		return common.NewNotFoundError("Video not found")
	}

	// Dependent records are cleaned up after the video is gone; a failure
	// here leaves orphans that no listing can reach.
	if err := r.cascade(ctx, id); err != nil {
		log.Warn().Err(err).Str("videoId", id.Hex()).Msg("video cascade incomplete")
	}
	return nil
}

func (r *mongoRepository) cascade(ctx context.Context, id primitive.ObjectID) error {
	comments := r.db.Collection(dbmongo.CommentsCollection)
	cur, err := comments.Find(ctx, bson.D{{Key: "video", Value: id}}, options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return err
	}
	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return err
	}
	commentIDs := make(bson.A, 0, len(rows))
	for _, row := range rows {
		commentIDs = append(commentIDs, row.ID)
	}

	likeFilter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "video", Value: id}},
		bson.D{{Key: "comment", Value: bson.D{{Key: "$in", Value: commentIDs}}}},
	}}}
	if _, err := r.db.Collection(dbmongo.LikesCollection).DeleteMany(ctx, likeFilter); err != nil {
		return err
	}
	if _, err := comments.DeleteMany(ctx, bson.D{{Key: "video", Value: id}}); err != nil {
		return err
	}
	_, err = r.db.Collection(dbmongo.PlaylistsCollection).UpdateMany(ctx,
		bson.D{{Key: "videos", Value: id}},
		bson.D{{Key: "$pull", Value: bson.D{{Key: "videos", Value: id}}}},
	)
	return err
}
