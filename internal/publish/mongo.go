package publish

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ukydev/yard-telemetry/internal/config"
	"github.com/ukydev/yard-telemetry/internal/models"
)

// inserter defines the batch-insert slice of the driver's collection API.
type inserter interface {
	InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
}

// MongoPublisher inserts each batch into a MongoDB collection named after
// the destination batch name.
type MongoPublisher struct {
	client     *mongo.Client
	collection inserter
}

// NewMongo connects to MongoDB and verifies the connection with a ping.
func NewMongo(ctx context.Context, cfg config.Config) (*MongoPublisher, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	// Ping to verify connection
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}

	return &MongoPublisher{
		client:     client,
		collection: client.Database(cfg.MongoDatabase).Collection(cfg.BatchName),
	}, nil
}

// Name returns the sink name.
func (p *MongoPublisher) Name() string { return config.SinkMongo }

// Publish inserts the whole batch in one call.
func (p *MongoPublisher) Publish(ctx context.Context, batch []models.Snapshot) error {
	// InsertMany rejects an empty document slice
	if len(batch) == 0 {
		return nil
	}
	docs := make([]interface{}, len(batch))
	for i, snap := range batch {
		docs[i] = snap
	}
	if _, err := p.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("mongo insert failed: %w", err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (p *MongoPublisher) Close(ctx context.Context) error {
	return p.client.Disconnect(ctx)
}
