package dbmongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vidtube/internal/common"
)

// VisibleVideo matches videos that are published or owned by viewer.
func VisibleVideo(viewer primitive.ObjectID) bson.D {
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "isPublished", Value: true}},
		bson.D{{Key: "owner", Value: viewer}},
	}}}
}

// VideoVisible reports whether videos holds id and viewer may see it.
func VideoVisible(ctx context.Context, videos *mongo.Collection, id, viewer primitive.ObjectID) (bool, error) {
	filter := append(bson.D{{Key: "_id", Value: id}}, VisibleVideo(viewer)...)
	n, err := videos.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, common.NewUpstreamError("failed to look up "+videos.Name(), err)
	}
	return n > 0, nil
}

// Exists reports whether coll holds a document with the given id.
func Exists(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID) (bool, error) {
	n, err := coll.CountDocuments(ctx, bson.D{{Key: "_id", Value: id}}, options.Count().SetLimit(1))
	if err != nil {
		return false, common.NewUpstreamError("failed to look up "+coll.Name(), err)
	}
	return n > 0, nil
}
