package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"toolmarket-backend/database"
	"toolmarket-backend/models"
)

// ReviewRepository stores reviews. Reviews are never updated or deleted.
type ReviewRepository interface {
	All(ctx context.Context) ([]models.Review, error)
	Create(ctx context.Context, review models.Review) (*InsertResult, error)
}

// BlogRepository is read only.
type BlogRepository interface {
	All(ctx context.Context) ([]models.Blog, error)
}

type MongoReviewRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewReviewRepository(db *mongo.Database, logger *zap.Logger) *MongoReviewRepository {
	return &MongoReviewRepository{
		collection: db.Collection(database.ReviewsCollection),
		logger:     logger.With(zap.String("collection", database.ReviewsCollection)),
	}
}

func (r *MongoReviewRepository) All(ctx context.Context) ([]models.Review, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Review](ctx, cursor, r.logger)
}

// Create inserts review as sent, except that the store assigns _id.
func (r *MongoReviewRepository) Create(ctx context.Context, review models.Review) (*InsertResult, error) {
	doc := make(bson.M, len(review))
	for k, v := range review {
		if k != "_id" {
			doc[k] = v
		}
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	return insertResult(res), nil
}

type MongoBlogRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewBlogRepository(db *mongo.Database, logger *zap.Logger) *MongoBlogRepository {
	return &MongoBlogRepository{
		collection: db.Collection(database.BlogsCollection),
		logger:     logger.With(zap.String("collection", database.BlogsCollection)),
	}
}

func (r *MongoBlogRepository) All(ctx context.Context) ([]models.Blog, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Blog](ctx, cursor, r.logger)
}
