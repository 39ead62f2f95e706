package application

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gomgom-ai/gomgom-services/app/internal/public/domain"
)

const (
	restaurantCacheTTL = 15 * time.Minute
	// AddressUnavailable is shown when reverse geocoding fails.
	AddressUnavailable = "주소 정보를 가져올 수 없습니다."
)

// restaurantQueryService lists nearby establishments, caching pulls
// and resolving an address through the optional geocoder.
type restaurantQueryService struct {
	restaurants RestaurantRepository
	geocoder    Geocoder
	cache       ResponseCache
	logger      *log.Logger
}

// NewRestaurantQueryService wires the nearby-list use case. geocoder
// and cache may be nil.
func NewRestaurantQueryService(restaurants RestaurantRepository, geocoder Geocoder, cache ResponseCache, logger *log.Logger) RestaurantQueryService {
	return &restaurantQueryService{restaurants: restaurants, geocoder: geocoder, cache: cache, logger: logger}
}

type nearbyCacheEntry struct {
	Restaurants []domain.Restaurant `json:"restaurants" bson:"restaurants"`
	Address     string              `json:"address" bson:"address"`
}

func (s *restaurantQueryService) Near(ctx context.Context, lat, lng float64) ([]domain.Restaurant, string, error) {
	key := fmt.Sprintf("restaurants_%f_%f", lat, lng)
	if s.cache != nil {
		var cached nearbyCacheEntry
		if ok, err := s.cache.Get(ctx, key, &cached); err == nil && ok {
			return cached.Restaurants, cached.Address, nil
		}
	}

	nearby, err := s.restaurants.FindNear(ctx, lat, lng, nearbyLimit)
	if err != nil {
		return nil, "", err
	}

	address := AddressUnavailable
	if s.geocoder != nil {
		if resolved, err := s.geocoder.Address(ctx, lat, lng); err == nil && resolved != "" {
			address = resolved
		} else if err != nil && s.logger != nil {
			s.logger.Printf("주소 변환 실패 lat=%f lng=%f: %v", lat, lng, err)
		}
	}

	if s.cache != nil {
		entry := nearbyCacheEntry{Restaurants: nearby, Address: address}
		if err := s.cache.Set(ctx, key, entry, restaurantCacheTTL); err != nil && s.logger != nil {
			s.logger.Printf("가게 목록 캐시 저장 실패: %v", err)
		}
	}
	return nearby, address, nil
}
