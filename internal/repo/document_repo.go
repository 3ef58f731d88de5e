package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xxxsen/edule/internal/db"
	"github.com/xxxsen/edule/internal/model"
)

// DocumentRepo stores schemaless documents in one collection.
type DocumentRepo struct {
	coll *mongo.Collection
}

func NewTuitionRepo(database *mongo.Database) *DocumentRepo {
	return &DocumentRepo{coll: database.Collection(db.CollectionTuitions)}
}

func NewConnectRepo(database *mongo.Database) *DocumentRepo {
	return &DocumentRepo{coll: database.Collection(db.CollectionConnects)}
}

func (r *DocumentRepo) Insert(ctx context.Context, doc model.Document) (primitive.ObjectID, error) {
	return insertOne(ctx, r.coll, doc.WithoutID())
}

func (r *DocumentRepo) List(ctx context.Context) ([]model.Document, error) {
	return r.find(ctx, bson.M{})
}

// FindByID returns zero or one documents; callers get a list either way.
func (r *DocumentRepo) FindByID(ctx context.Context, id primitive.ObjectID) ([]model.Document, error) {
	return r.find(ctx, bson.M{"_id": id})
}

func (r *DocumentRepo) find(ctx context.Context, filter bson.M) ([]model.Document, error) {
	docs := []model.Document{}
	if err := findAll(ctx, r.coll, filter, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
