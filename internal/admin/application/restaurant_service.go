package application

import (
	"context"
	"errors"
	"strings"

	"github.com/gomgom-ai/gomgom-services/app/internal/public/domain"
)

// ErrInvalidRestaurant rejects an upsert missing required fields.
var ErrInvalidRestaurant = errors.New("application: 가게 이름과 ID는 필수입니다")

type restaurantService struct {
	repo RestaurantRepository
}

// NewRestaurantService creates the admin catalogue service.
func NewRestaurantService(repo RestaurantRepository) RestaurantService {
	return &restaurantService{repo: repo}
}

func (s *restaurantService) List(ctx context.Context, page, limit int) ([]domain.Restaurant, error) {
	return s.repo.List(ctx, page, limit)
}

func (s *restaurantService) Upsert(ctx context.Context, restaurant domain.Restaurant) error {
	if strings.TrimSpace(restaurant.ID) == "" || strings.TrimSpace(restaurant.Name) == "" {
		return ErrInvalidRestaurant
	}
	return s.repo.Upsert(ctx, restaurant)
}
