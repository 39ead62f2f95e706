package application

import (
	"context"
	"time"

	"github.com/gomgom-ai/gomgom-services/app/internal/public/domain"
)

// RestaurantRepository abstracts read access to the catalogue.
// RestaurantRepository 는 Public 컨텍스트에서 가게를 읽는 포트.
type RestaurantRepository interface {
	FindNear(ctx context.Context, lat, lng float64, limit int) ([]domain.Restaurant, error)
}

// UserRepository handles account reads/writes for the auth endpoints.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByKakaoID(ctx context.Context, kakaoID string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

// ResponseCache stores whole endpoint responses with a TTL:
// restaurant pulls for 15m, recommendations for 30m.
type ResponseCache interface {
	Get(ctx context.Context, key string, out any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Translator translates a single text into the target language.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Geocoder resolves a human-readable address for a coordinate.
type Geocoder interface {
	Address(ctx context.Context, lat, lng float64) (string, error)
}

// RecommendQuery is the canonical query tuple of both recommendation
// endpoints.
type RecommendQuery struct {
	Text string
	Lat  float64
	Lng  float64
	Mode string
	Tags []string
	// BypassCache is set when the client sent a cache-busting dummy
	// token: the stored response is ignored and overwritten.
	BypassCache bool
}

// RecommendOutcome is what the recommendation use case yields: the
// candidate pool (best match first), the matched restaurant records,
// and the tag score echoed in test mode.
type RecommendOutcome struct {
	Results     []domain.Recommendation
	Restaurants []domain.Restaurant
	Score       domain.TagScore
}

// RecommendService describes the recommendation use case.
type RecommendService interface {
	Recommend(ctx context.Context, query RecommendQuery) (*RecommendOutcome, error)
}

// RestaurantQueryService lists nearby establishments with a resolved
// address.
type RestaurantQueryService interface {
	Near(ctx context.Context, lat, lng float64) ([]domain.Restaurant, string, error)
}

// TranslationService translates a batch, one output per input.
type TranslationService interface {
	TranslateAll(ctx context.Context, texts []string) []string
}
