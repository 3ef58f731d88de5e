package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/xxxsen/edule/internal/config"
)

const (
	CollectionUsers      = "users"
	CollectionTuitions   = "tuitions"
	CollectionApplicants = "applicants"
	CollectionConnects   = "connects"
)

const connectTimeout = 10 * time.Second

// Open connects to the cluster and pings the primary. The returned client owns
// the connection pool shared by every repository; Close it at shutdown.
func Open(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.ConnectionURI()).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	if cfg.UseServerAPI() {
		opts.SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion(cfg.ServerAPIVersion)))
	}
	if cfg.TimeoutSeconds > 0 {
		opts.SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

func Close(ctx context.Context, client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the unique (email, subjectId) index on applicants, which
// turns the duplicate application check into a storage-level guarantee.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	_, err := database.Collection(CollectionApplicants).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}, {Key: "subjectId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_subjectId_unique"),
	})
	if err != nil {
		return fmt.Errorf("create applicants index: %w", err)
	}
	return nil
}
