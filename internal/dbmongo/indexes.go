package dbmongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexSpec is one index on one collection.
type IndexSpec struct {
	Collection string
	Model      mongo.IndexModel
}

func uniqueRelation(name, actor, target string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys: bson.D{{Key: actor, Value: 1}, {Key: target, Value: 1}},
		Options: options.Index().
			SetName(name).
			SetUnique(true).
			SetPartialFilterExpression(bson.D{{Key: target, Value: bson.D{{Key: "$exists", Value: true}}}}),
	}
}

// Indexes lists every index the API relies on. The unique relation indexes
// are what keep concurrent toggles from creating duplicate likes or
// subscriptions.
func Indexes() []IndexSpec {
	return []IndexSpec{
		{UsersCollection, mongo.IndexModel{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetName("uniq_username").SetUnique(true)}},
		{UsersCollection, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("uniq_email").SetUnique(true)}},

		{VideosCollection, mongo.IndexModel{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("owner_created")}},
		{CommentsCollection, mongo.IndexModel{Keys: bson.D{{Key: "video", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("video_created")}},
		{PlaylistsCollection, mongo.IndexModel{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("owner_created")}},
		{PlaylistsCollection, mongo.IndexModel{Keys: bson.D{{Key: "videos", Value: 1}}, Options: options.Index().SetName("videos")}},
		{TweetsCollection, mongo.IndexModel{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("owner_created")}},

		{LikesCollection, uniqueRelation("uniq_like_video", "likedBy", "video")},
		{LikesCollection, uniqueRelation("uniq_like_comment", "likedBy", "comment")},
		{LikesCollection, uniqueRelation("uniq_like_tweet", "likedBy", "tweet")},
		{LikesCollection, mongo.IndexModel{Keys: bson.D{{Key: "video", Value: 1}}, Options: options.Index().SetName("video")}},

		{SubscriptionsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "subscriber", Value: 1}, {Key: "channel", Value: 1}},
			Options: options.Index().SetName("uniq_subscription").SetUnique(true),
		}},
		{SubscriptionsCollection, mongo.IndexModel{Keys: bson.D{{Key: "channel", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("channel_created")}},
	}
}

// EnsureIndexes creates missing indexes. Creating an existing index with the
// same definition is a no-op on the server.
func (mc *MongoClient) EnsureIndexes(ctx context.Context) error {
	for _, spec := range Indexes() {
		if _, err := mc.Collection(spec.Collection).Indexes().CreateOne(ctx, spec.Model); err != nil {
			return fmt.Errorf("create index on %s: %w", spec.Collection, err)
		}
	}
	return nil
}
