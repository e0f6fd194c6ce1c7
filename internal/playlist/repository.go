package playlist

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vidtube/internal/common"
	"vidtube/internal/dbmongo"
	"vidtube/internal/pagination"
)

var Sortable = pagination.NewSortable("updatedAt", "name")

var ownerJoin = pagination.Join{
	From:         dbmongo.UsersCollection,
	LocalField:   "owner",
	ForeignField: "_id",
	As:           "owner",
	Project:      dbmongo.UserRefFields,
}

type Repository interface {
	Create(ctx context.Context, p *dbmongo.Playlist) error
	// FindByID returns nil, nil when the playlist does not exist.
	FindByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.Playlist, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.PlaylistSummary], error)
	// Details leaves out videos the viewer may not see.
	Details(ctx context.Context, id, viewer primitive.ObjectID) (*dbmongo.PlaylistDetails, error)
	VideoVisible(ctx context.Context, videoID, viewer primitive.ObjectID) (bool, error)
	AddVideo(ctx context.Context, id, videoID primitive.ObjectID) (*dbmongo.Playlist, error)
	RemoveVideo(ctx context.Context, id, videoID primitive.ObjectID) (*dbmongo.Playlist, error)
	Update(ctx context.Context, id primitive.ObjectID, name, description *string) (*dbmongo.Playlist, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoRepository struct {
	playlists *mongo.Collection
	videos    *mongo.Collection
	timeout   time.Duration
}

func NewRepository(mc *dbmongo.MongoClient) Repository {
	return &mongoRepository{
		playlists: mc.Collection(dbmongo.PlaylistsCollection),
		videos:    mc.Collection(dbmongo.VideosCollection),
		timeout:   mc.OpTimeout,
	}
}

func (r *mongoRepository) Create(ctx context.Context, p *dbmongo.Playlist) error {
	if err := p.Validate(); err != nil {
		return common.NewValidationError(err.Error())
	}
	if p.Videos == nil {
		p.Videos = []primitive.ObjectID{}
	}
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.playlists.InsertOne(ctx, p)
	if err != nil {
		return common.NewUpstreamError("failed to create playlist", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.Playlist, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	var p dbmongo.Playlist
	if err := r.playlists.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, common.NewUpstreamError("failed to load playlist", err)
	}
	return &p, nil
}

func (r *mongoRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID, page pagination.PageRequest) (*pagination.PageResult[dbmongo.PlaylistSummary], error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()
	return pagination.Run[dbmongo.PlaylistSummary](ctx, r.playlists, pagination.Query{
		Filter: pagination.And(pagination.Eq("owner", owner)),
		Joins:  []pagination.Join{ownerJoin},
		Page:   page,
	})
}

func (r *mongoRepository) Details(ctx context.Context, id, viewer primitive.ObjectID) (*dbmongo.PlaylistDetails, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()
	return pagination.First[dbmongo.PlaylistDetails](ctx, r.playlists, pagination.Query{
		Filter: pagination.And(pagination.Eq("_id", id)),
		Joins: []pagination.Join{
			ownerJoin,
			{
				From:         dbmongo.VideosCollection,
				LocalField:   "videos",
				ForeignField: "_id",
				As:           "videos",
				Project:      dbmongo.VideoSummaryFields,
				Match:        dbmongo.VisibleVideo(viewer),
				Many:         true,
			},
		},
	})
}

func (r *mongoRepository) VideoVisible(ctx context.Context, videoID, viewer primitive.ObjectID) (bool, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()
	return dbmongo.VideoVisible(ctx, r.videos, videoID, viewer)
}

func (r *mongoRepository) AddVideo(ctx context.Context, id, videoID primitive.ObjectID) (*dbmongo.Playlist, error) {
	return r.update(ctx, id, bson.D{
		{Key: "$addToSet", Value: bson.D{{Key: "videos", Value: videoID}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now()}}},
	})
}

func (r *mongoRepository) RemoveVideo(ctx context.Context, id, videoID primitive.ObjectID) (*dbmongo.Playlist, error) {
	return r.update(ctx, id, bson.D{
		{Key: "$pull", Value: bson.D{{Key: "videos", Value: videoID}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now()}}},
	})
}

func (r *mongoRepository) Update(ctx context.Context, id primitive.ObjectID, name, description *string) (*dbmongo.Playlist, error) {
	set := bson.D{{Key: "updatedAt", Value: time.Now()}}
	if name != nil {
		set = append(set, bson.E{Key: "name", Value: *name})
	}
	if description != nil {
		set = append(set, bson.E{Key: "description", Value: *description})
	}
	return r.update(ctx, id, bson.D{{Key: "$set", Value: set}})
}

func (r *mongoRepository) update(ctx context.Context, id primitive.ObjectID, update bson.D) (*dbmongo.Playlist, error) {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	var p dbmongo.Playlist
	err := r.playlists.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NewNotFoundError("Playlist not found")
		}
		return nil, common.NewUpstreamError("failed to update playlist", err)
	}
	return &p, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := dbmongo.WithOpTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.playlists.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return common.NewUpstreamError("failed to delete playlist", err)
	}
	if res.DeletedCount == 0 {
		return common.NewNotFoundError("Playlist not found")
	}
	return nil
}
