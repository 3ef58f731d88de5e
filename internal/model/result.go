package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// InsertResult mirrors the acknowledgment a document store hands back for a
// single insert.
type InsertResult struct {
	Acknowledged bool               `json:"acknowledged"`
	InsertedID   primitive.ObjectID `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool                `json:"acknowledged"`
	MatchedCount  int64               `json:"matchedCount"`
	ModifiedCount int64               `json:"modifiedCount"`
	UpsertedCount int64               `json:"upsertedCount"`
	UpsertedID    *primitive.ObjectID `json:"upsertedId"`
}

// Rejection is returned with a 200 status when a business rule declines a write.
type Rejection struct {
	Acknowledged bool   `json:"acknowledged"`
	Message      string `json:"message"`
}
