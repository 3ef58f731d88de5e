package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xxxsen/edule/internal/db"
	"github.com/xxxsen/edule/internal/model"
)

type ApplicantRepo struct {
	docs *DocumentRepo
}

func NewApplicantRepo(database *mongo.Database) *ApplicantRepo {
	return &ApplicantRepo{docs: &DocumentRepo{coll: database.Collection(db.CollectionApplicants)}}
}

// Insert returns ErrConflict when a unique index on (email, subjectId) exists
// and the pair is taken.
func (r *ApplicantRepo) Insert(ctx context.Context, doc model.Document) (primitive.ObjectID, error) {
	return r.docs.Insert(ctx, doc)
}

func (r *ApplicantRepo) List(ctx context.Context) ([]model.Document, error) {
	return r.docs.List(ctx)
}

func (r *ApplicantRepo) FindByEmailAndSubject(ctx context.Context, email, subjectID string) ([]model.Document, error) {
	return r.docs.find(ctx, bson.M{model.KeyEmail: email, model.KeySubjectID: subjectID})
}
