package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/saisie-livres/internal/domain/models"
)

const entriesCollection = "stock_entries"

// JournalRepository stores accepted stock entries in MongoDB.
type JournalRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewJournalRepository connects to MongoDB and verifies the connection.
func NewJournalRepository(ctx context.Context, uri string, dbName string) (*JournalRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	coll := client.Database(dbName).Collection(entriesCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "created_at", Value: 1}}})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create journal index: %w", err)
	}

	return &JournalRepository{client: client, coll: coll}, nil
}

// RecordEntry appends one accepted entry.
func (r *JournalRepository) RecordEntry(ctx context.Context, entry models.JournalEntry) error {
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert journal entry for ean %s: %w", entry.EAN, err)
	}
	return nil
}

// ListEntries returns entries created in [start, end), oldest first.
func (r *JournalRepository) ListEntries(ctx context.Context, start, end time.Time) ([]models.JournalEntry, error) {
	filter := bson.M{"created_at": bson.M{"$gte": start, "$lt": end}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}

	var entries []models.JournalEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode journal entries: %w", err)
	}
	return entries, nil
}

// Close closes the MongoDB connection.
func (r *JournalRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
