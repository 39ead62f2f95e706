package mongo

import (
	"context"
	"time"

	"github.com/gomgom-ai/gomgom-services/app/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdminRestaurantRepository provides the catalogue-management side of
// the restaurants collection.
type AdminRestaurantRepository struct {
	collection *mongo.Collection
}

// NewAdminRestaurantRepository creates the admin-facing repository.
func NewAdminRestaurantRepository(db *mongo.Database, collectionName string) *AdminRestaurantRepository {
	return &AdminRestaurantRepository{collection: db.Collection(collectionName)}
}

// List pages through the whole catalogue, newest first.
func (r *AdminRestaurantRepository) List(ctx context.Context, page, limit int) ([]domain.Restaurant, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
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
	return restaurants, cursor.Err()
}

// Upsert writes one catalogue entry keyed by its external ID.
func (r *AdminRestaurantRepository) Upsert(ctx context.Context, restaurant domain.Restaurant) error {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"name":        restaurant.Name,
			"categories":  restaurant.Categories,
			"address":     restaurant.Address,
			"logoURL":     restaurant.LogoURL,
			"phone":       restaurant.Phone,
			"reviewAvg":   restaurant.ReviewAvg,
			"reviewCount": restaurant.ReviewCount,
			"deliveryFee": restaurant.DeliveryFee.Basic,
			"openHours":   restaurant.OpenHours,
			"location": GeoPointDocument{
				Type:        "Point",
				Coordinates: []float64{restaurant.Location.Longitude, restaurant.Location.Latitude},
			},
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"externalId": restaurant.ID},
		update,
		options.Update().SetUpsert(true),
	)
	return err
}
