package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrStockConflict = errors.New("available quantity changed since it was read")
)

// The result types mirror the acknowledgement documents the Node driver
// returns, which existing frontends already parse.

type InsertResult struct {
	Acknowledged bool        `json:"acknowledged"`
	InsertedID   interface{} `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool        `json:"acknowledged"`
	MatchedCount  int64       `json:"matchedCount"`
	ModifiedCount int64       `json:"modifiedCount"`
	UpsertedCount int64       `json:"upsertedCount"`
	UpsertedID    interface{} `json:"upsertedId"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

func insertResult(res *mongo.InsertOneResult) *InsertResult {
	return &InsertResult{Acknowledged: true, InsertedID: res.InsertedID}
}

func updateResult(res *mongo.UpdateResult) *UpdateResult {
	return &UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}
}

func deleteResult(res *mongo.DeleteResult) *DeleteResult {
	return &DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}
}
