package recordstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoDocument struct {
	Name      string    `bson:"_id"`
	Document  string    `bson:"document"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoBackend keeps each collection as one document in the "collections" collection
type MongoBackend struct {
	coll *mongo.Collection
}

// NewMongoBackend creates a backend over db
func NewMongoBackend(db *mongo.Database) *MongoBackend {
	return &MongoBackend{coll: db.Collection("collections")}
}

// Read implements Backend
func (b *MongoBackend) Read(ctx context.Context, collection string) ([]byte, error) {
	var doc mongoDocument
	err := b.coll.FindOne(ctx, bson.M{"_id": collection}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCollectionNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc.Document), nil
}

// Write implements Backend
func (b *MongoBackend) Write(ctx context.Context, collection string, data []byte) error {
	doc := mongoDocument{
		Name:      collection,
		Document:  string(data),
		UpdatedAt: time.Now().UTC(),
	}
	_, err := b.coll.ReplaceOne(ctx, bson.M{"_id": collection}, doc, options.Replace().SetUpsert(true))
	return err
}

// Close is a no-op; the client is owned by the caller
func (b *MongoBackend) Close() error { return nil }
