package pagination

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vidtube/internal/common"
)

// Aggregator is the slice of *mongo.Collection the runner needs.
type Aggregator interface {
	Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (*mongo.Cursor, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

// Run executes q and decodes each row into T. The total comes from a
// separate count over the same filter, so a concurrent write can make the
// count and the slice disagree by that write.
func Run[T any](ctx context.Context, agg Aggregator, q Query) (*PageResult[T], error) {
	q.Page = q.Page.Normalize()

	total, err := agg.CountDocuments(ctx, q.filter())
	if err != nil {
		return nil, common.NewUpstreamError("failed to count documents", err)
	}
	if total == 0 || q.Page.Skip() >= total {
		return newPageResult[T](nil, total, q.Page), nil
	}

	cursor, err := agg.Aggregate(ctx, q.Pipeline())
	if err != nil {
		return nil, common.NewUpstreamError("failed to fetch documents", err)
	}
	defer cursor.Close(ctx)

	var items []T
	if err := cursor.All(ctx, &items); err != nil {
		return nil, common.NewUpstreamError("failed to decode documents", err)
	}
	return newPageResult(items, total, q.Page), nil
}

// First returns the single enriched document matching q.Filter, or nil.
func First[T any](ctx context.Context, agg Aggregator, q Query) (*T, error) {
	cursor, err := agg.Aggregate(ctx, q.singlePipeline())
	if err != nil {
		return nil, common.NewUpstreamError("failed to fetch document", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, common.NewUpstreamError("failed to fetch document", err)
		}
		return nil, nil
	}
	var out T
	if err := cursor.Decode(&out); err != nil {
		return nil, common.NewUpstreamError("failed to decode document", err)
	}
	return &out, nil
}
