package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"toolmarket-backend/database"
	"toolmarket-backend/models"
)

type UserRepository interface {
	All(ctx context.Context) ([]models.User, error)
	FindBySubject(ctx context.Context, uid models.SubjectID) (*models.User, error)
	// UpsertProfile $sets fields on the user document for uid, creating it
	// when missing. fields must come from models.UserProfile.Fields.
	UpsertProfile(ctx context.Context, uid models.SubjectID, fields bson.M) (*UpdateResult, error)
	PromoteToAdmin(ctx context.Context, uid models.SubjectID) (*UpdateResult, error)
}

type MongoUserRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewUserRepository(db *mongo.Database, logger *zap.Logger) *MongoUserRepository {
	return &MongoUserRepository{
		collection: db.Collection(database.UsersCollection),
		logger:     logger.With(zap.String("collection", database.UsersCollection)),
	}
}

func (r *MongoUserRepository) All(ctx context.Context) ([]models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	docs, err := decodeAll[bson.M](ctx, cursor, r.logger)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, models.UserFromDocument(doc))
	}
	return users, nil
}

func (r *MongoUserRepository) FindBySubject(ctx context.Context, uid models.SubjectID) (*models.User, error) {
	var doc bson.M
	err := r.collection.FindOne(ctx, bson.M{"userId": uid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	user := models.UserFromDocument(doc)
	return &user, nil
}

func (r *MongoUserRepository) UpsertProfile(ctx context.Context, uid models.SubjectID, fields bson.M) (*UpdateResult, error) {
	set := make(bson.M, len(fields)+1)
	for k, v := range fields {
		set[k] = v
	}
	set["userId"] = uid

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"userId": uid},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}
	return updateResult(res), nil
}

func (r *MongoUserRepository) PromoteToAdmin(ctx context.Context, uid models.SubjectID) (*UpdateResult, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"userId": uid},
		bson.M{"$set": bson.M{"role": models.RoleAdmin}},
	)
	if err != nil {
		return nil, err
	}
	return updateResult(res), nil
}
