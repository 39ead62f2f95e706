package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CacheRepository implements application.ResponseCache on a Mongo
// collection with a TTL index over expiresAt.
type CacheRepository struct {
	collection *mongo.Collection
}

// NewCacheRepository creates the cache store and best-effort ensures
// the TTL index; index failure only disables background reaping, the
// repository still filters stale entries on read.
func NewCacheRepository(ctx context.Context, db *mongo.Database, collectionName string) *CacheRepository {
	collection := db.Collection(collectionName)

	indexCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, _ = collection.Indexes().CreateOne(indexCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})

	return &CacheRepository{collection: collection}
}

// Get loads the cached value under key into out. ok is false for a
// miss or an expired-but-unreaped entry.
func (r *CacheRepository) Get(ctx context.Context, key string, out any) (bool, error) {
	var doc CacheDocument
	err := r.collection.FindOne(ctx, bson.M{
		"_id":       key,
		"expiresAt": bson.M{"$gt": time.Now()},
	}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := bson.Unmarshal(doc.Value, out); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores value under key for ttl, replacing any previous entry.
func (r *CacheRepository) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := bson.Marshal(value)
	if err != nil {
		return err
	}

	doc := CacheDocument{Key: key, Value: raw, ExpiresAt: time.Now().Add(ttl)}
	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return err
}
