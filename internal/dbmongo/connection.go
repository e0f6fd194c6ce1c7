// Package dbmongo owns the MongoDB connection, the stored record types and
// the GridFS bucket that hosts uploaded media.
package dbmongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vidtube/internal/config"
)

const (
	UsersCollection         = "users"
	VideosCollection        = "videos"
	CommentsCollection      = "comments"
	LikesCollection         = "likes"
	SubscriptionsCollection = "subscriptions"
	PlaylistsCollection     = "playlists"
	TweetsCollection        = "tweets"
)

type MongoClient struct {
	Client   *mongo.Client
	Database *mongo.Database
	GridFS   *gridfs.Bucket

	// OpTimeout bounds each store call made through WithTimeout.
	OpTimeout time.Duration
}

func NewMongoConnection(c *config.Config) (*MongoClient, error) {
	clientOptions := options.Client().ApplyURI(c.GetMongoURI())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	database := client.Database(c.MongoDB.Database)
	bucket, err := gridfs.NewBucket(database, options.GridFSBucket().SetName(c.Media.Bucket))
	if err != nil {
		return nil, fmt.Errorf("failed to create GridFSBucket: %w", err)
	}

	log.Info().Str("database", c.MongoDB.Database).Str("bucket", c.Media.Bucket).Msg("connected to MongoDB")

	return &MongoClient{
		Client:    client,
		Database:  database,
		GridFS:    bucket,
		OpTimeout: c.MongoDB.OperationTimeout,
	}, nil
}

func (mc *MongoClient) Collection(name string) *mongo.Collection {
	return mc.Database.Collection(name)
}

// WithTimeout derives the per-call deadline for store operations.
func (mc *MongoClient) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return WithOpTimeout(ctx, mc.OpTimeout)
}

func WithOpTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func (mc *MongoClient) Ping(ctx context.Context) error {
	ctx, cancel := mc.WithTimeout(ctx)
	defer cancel()
	return mc.Client.Ping(ctx, nil)
}

func (mc *MongoClient) Close(ctx context.Context) error {
	return mc.Client.Disconnect(ctx)
}
