package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"toolmarket-backend/database"
	"toolmarket-backend/models"
)

// ToolRepository defines the data access needed by the tool endpoints.
type ToolRepository interface {
	All(ctx context.Context) ([]models.Tool, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tool, error)
	Create(ctx context.Context, tool *models.Tool) (*InsertResult, error)
	DecrementStock(ctx context.Context, id primitive.ObjectID, amount models.Quantity) (*StockChange, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*DeleteResult, error)
}

// StockChange reports a stock decrement.
type StockChange struct {
	From   models.Quantity
	To     models.Quantity
	Result *UpdateResult
}

type MongoToolRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewToolRepository(db *mongo.Database, logger *zap.Logger) *MongoToolRepository {
	return &MongoToolRepository{
		collection: db.Collection(database.ToolsCollection),
		logger:     logger.With(zap.String("collection", database.ToolsCollection)),
	}
}

func (r *MongoToolRepository) All(ctx context.Context) ([]models.Tool, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Tool](ctx, cursor, r.logger)
}

func (r *MongoToolRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tool, error) {
	var tool models.Tool
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tool)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tool, nil
}

func (r *MongoToolRepository) Create(ctx context.Context, tool *models.Tool) (*InsertResult, error) {
	res, err := r.collection.InsertOne(ctx, tool)
	if err != nil {
		return nil, err
	}
	return insertResult(res), nil
}

// DecrementStock subtracts amount from availableQuan. The write is guarded
// by the exact value that was read, in whatever BSON type it is stored, so
// a concurrent writer makes it fail with ErrStockConflict. A missing or
// null quantity counts as zero and a negative result is stored as is.
func (r *MongoToolRepository) DecrementStock(ctx context.Context, id primitive.ObjectID, amount models.Quantity) (*StockChange, error) {
	doc, err := r.collection.FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(bson.M{"availableQuan": 1}),
	).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var current models.Quantity
	filter := bson.M{"_id": id}
	stored, lookupErr := doc.LookupErr("availableQuan")
	if lookupErr != nil {
		filter["availableQuan"] = bson.M{"$exists": false}
	} else {
		if err := current.UnmarshalBSONValue(stored.Type, stored.Value); err != nil {
			return nil, fmt.Errorf("tool %s: availableQuan: %w", id.Hex(), err)
		}
		filter["availableQuan"] = stored
	}

	next := current - amount
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"availableQuan": next}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrStockConflict
	}
	return &StockChange{From: current, To: next, Result: updateResult(res)}, nil
}

func (r *MongoToolRepository) Delete(ctx context.Context, id primitive.ObjectID) (*DeleteResult, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return deleteResult(res), nil
}
