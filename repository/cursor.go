package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// decodeAll drains cursor into a slice of T. A document that does not
// decode is logged and skipped so the rest of the collection is still
// returned.
func decodeAll[T any](ctx context.Context, cursor *mongo.Cursor, log *zap.Logger) ([]T, error) {
	defer cursor.Close(ctx)

	out := make([]T, 0)
	for cursor.Next(ctx) {
		var v T
		if err := cursor.Decode(&v); err != nil {
			log.Warn("skipping undecodable document",
				zap.Stringer("_id", cursor.Current.Lookup("_id")),
				zap.Error(err),
			)
			continue
		}
		out = append(out, v)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
