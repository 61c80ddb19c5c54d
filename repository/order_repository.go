package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"toolmarket-backend/database"
	"toolmarket-backend/models"
)

type OrderRepository interface {
	All(ctx context.Context) ([]models.Order, error)
	ByBuyer(ctx context.Context, buyerID models.SubjectID) ([]models.Order, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) (*InsertResult, error)
	MarkPaid(ctx context.Context, id primitive.ObjectID, transactionID string) (*UpdateResult, error)
	SetShipmentStatus(ctx context.Context, id primitive.ObjectID, status string) (*UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*DeleteResult, error)
}

type MongoOrderRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewOrderRepository(db *mongo.Database, logger *zap.Logger) *MongoOrderRepository {
	return &MongoOrderRepository{
		collection: db.Collection(database.OrdersCollection),
		logger:     logger.With(zap.String("collection", database.OrdersCollection)),
	}
}

func (r *MongoOrderRepository) All(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoOrderRepository) ByBuyer(ctx context.Context, buyerID models.SubjectID) ([]models.Order, error) {
	return r.find(ctx, bson.M{"buyerId": buyerID})
}

func (r *MongoOrderRepository) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Order](ctx, cursor, r.logger)
}

func (r *MongoOrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *MongoOrderRepository) Create(ctx context.Context, order *models.Order) (*InsertResult, error) {
	res, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return nil, err
	}
	return insertResult(res), nil
}

// MarkPaid sets the payment status and transaction id in one update.
func (r *MongoOrderRepository) MarkPaid(ctx context.Context, id primitive.ObjectID, transactionID string) (*UpdateResult, error) {
	return r.set(ctx, id, bson.M{
		"paymentStatus": models.PaymentPaid,
		"transactionId": transactionID,
	})
}

func (r *MongoOrderRepository) SetShipmentStatus(ctx context.Context, id primitive.ObjectID, status string) (*UpdateResult, error) {
	return r.set(ctx, id, bson.M{"shipmentStatus": status})
}

func (r *MongoOrderRepository) set(ctx context.Context, id primitive.ObjectID, fields bson.M) (*UpdateResult, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return nil, err
	}
	return updateResult(res), nil
}

func (r *MongoOrderRepository) Delete(ctx context.Context, id primitive.ObjectID) (*DeleteResult, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return deleteResult(res), nil
}
