package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xxxsen/edule/internal/model"
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	ListByEmail(ctx context.Context, email string) ([]model.User, error)
	UpdateByEmail(ctx context.Context, email string, fields map[string]string) (*model.UpdateResult, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, fields map[string]string) (*model.UpdateResult, error)
}

type DocumentInserter interface {
	Insert(ctx context.Context, doc model.Document) (primitive.ObjectID, error)
}

type DocumentStore interface {
	DocumentInserter
	List(ctx context.Context) ([]model.Document, error)
	FindByID(ctx context.Context, id primitive.ObjectID) ([]model.Document, error)
}

type ApplicantStore interface {
	DocumentInserter
	List(ctx context.Context) ([]model.Document, error)
	FindByEmailAndSubject(ctx context.Context, email, subjectID string) ([]model.Document, error)
}

func insertResult(id primitive.ObjectID) *model.InsertResult {
	return &model.InsertResult{Acknowledged: true, InsertedID: id}
}
