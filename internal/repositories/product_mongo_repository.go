package repositories

import (
	"context"
	"fmt"
	"time"

	"catalogseed/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const serverSelectionTimeout = 10 * time.Second

// MongoProductRepository writes products into a MongoDB collection.
type MongoProductRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
	target     string
}

// NewMongoProductRepository connects to uri and verifies the primary is
// reachable before returning.
func NewMongoProductRepository(ctx context.Context, uri, database, collection string) (*MongoProductRepository, error) {
	client, err := mongo.Connect(options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(serverSelectionTimeout))
	if err != nil {
		return nil, fmt.Errorf("%w: connect mongo: %v", ErrConnection, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: ping mongo: %v", ErrConnection, err)
	}

	return &MongoProductRepository{
		client:     client,
		collection: client.Database(database).Collection(collection),
		target:     database + "/" + collection,
	}, nil
}

// MongoOpener returns an Opener that dials a fresh client per run.
func MongoOpener(uri, database, collection string) Opener {
	return func(ctx context.Context) (ProductRepository, error) {
		return NewMongoProductRepository(ctx, uri, database, collection)
	}
}

// InsertMany inserts all products with one InsertMany call.
func (r *MongoProductRepository) InsertMany(ctx context.Context, products []models.Product) ([]string, error) {
	if len(products) == 0 {
		return nil, nil
	}

	res, err := r.collection.InsertMany(ctx, products)
	if err != nil {
		if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
			return nil, fmt.Errorf("%w: insert into %s: %v", ErrConnection, r.target, err)
		}
		return nil, fmt.Errorf("%w: insert into %s: %v", ErrWrite, r.target, err)
	}

	ids := make([]string, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		if oid, ok := id.(bson.ObjectID); ok {
			ids = append(ids, oid.Hex())
			continue
		}
		ids = append(ids, fmt.Sprint(id))
	}
	return ids, nil
}

// Close disconnects the client.
func (r *MongoProductRepository) Close(ctx context.Context) error {
	if err := r.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect mongo: %w", err)
	}
	return nil
}

// Target returns "database/collection".
func (r *MongoProductRepository) Target() string {
	return r.target
}
