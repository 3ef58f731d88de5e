package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	appErr "github.com/xxxsen/edule/internal/pkg/errors"
)

// ParseID converts a 24 char hex string into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, appErr.ErrInvalidID
	}
	return id, nil
}
