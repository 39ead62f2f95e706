package mongo

import (
	"context"

	"github.com/gomgom-ai/gomgom-services/app/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// searchRadiusKm bounds the nearby query; roughly the delivery range
// of the upstream data.
const searchRadiusKm = 5.0

const earthRadiusKm = 6378.1

// RestaurantRepository implements application.RestaurantRepository
// using MongoDB.
type RestaurantRepository struct {
	collection *mongo.Collection
}

// NewRestaurantRepository creates a Mongo-backed catalogue reader.
func NewRestaurantRepository(db *mongo.Database, collectionName string) *RestaurantRepository {
	return &RestaurantRepository{collection: db.Collection(collectionName)}
}

// FindNear returns up to limit restaurants within the search radius
// of the coordinate, best reviewed first.
func (r *RestaurantRepository) FindNear(ctx context.Context, lat, lng float64, limit int) ([]domain.Restaurant, error) {
	filter := bson.M{
		"location": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{
					bson.A{lng, lat},
					searchRadiusKm / earthRadiusKm,
				},
			},
		},
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "reviewAvg", Value: -1}, {Key: "reviewCount", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	restaurants := make([]domain.Restaurant, 0)
	for cursor.Next(ctx) {
		var doc RestaurantDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, mapRestaurantDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return restaurants, nil
}
