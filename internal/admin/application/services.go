package application

import (
	"context"

	"github.com/gomgom-ai/gomgom-services/app/internal/public/domain"
)

// RestaurantRepository is the catalogue-management port.
type RestaurantRepository interface {
	List(ctx context.Context, page, limit int) ([]domain.Restaurant, error)
	Upsert(ctx context.Context, restaurant domain.Restaurant) error
}

// RestaurantService describes the admin catalogue use cases.
type RestaurantService interface {
	List(ctx context.Context, page, limit int) ([]domain.Restaurant, error)
	Upsert(ctx context.Context, restaurant domain.Restaurant) error
}
