package repo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xxxsen/edule/internal/db"
	"github.com/xxxsen/edule/internal/model"
)

type UserRepo struct {
	coll *mongo.Collection
}

func NewUserRepo(database *mongo.Database) *UserRepo {
	return &UserRepo{coll: database.Collection(db.CollectionUsers)}
}

func (r *UserRepo) Create(ctx context.Context, user *model.User) (primitive.ObjectID, error) {
	return insertOne(ctx, r.coll, user)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := findOne(ctx, r.coll, bson.M{"email": email}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	var user model.User
	if err := findOne(ctx, r.coll, bson.M{"_id": id}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	return r.list(ctx, bson.M{})
}

func (r *UserRepo) ListByEmail(ctx context.Context, email string) ([]model.User, error) {
	return r.list(ctx, bson.M{"email": email})
}

func (r *UserRepo) list(ctx context.Context, filter bson.M) ([]model.User, error) {
	users := []model.User{}
	if err := findAll(ctx, r.coll, filter, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepo) UpdateByEmail(ctx context.Context, email string, fields map[string]string) (*model.UpdateResult, error) {
	return r.update(ctx, bson.M{"email": email}, fields)
}

func (r *UserRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, fields map[string]string) (*model.UpdateResult, error) {
	return r.update(ctx, bson.M{"_id": id}, fields)
}

func (r *UserRepo) update(ctx context.Context, filter bson.M, fields map[string]string) (*model.UpdateResult, error) {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", r.coll.Name(), err)
	}
	out := &model.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if id, ok := res.UpsertedID.(primitive.ObjectID); ok {
		out.UpsertedID = &id
	}
	return out, nil
}
