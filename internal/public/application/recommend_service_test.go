package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gomgom-ai/gomgom-services/app/internal/public/domain"
)

type stubRestaurantRepo struct {
	nearby []domain.Restaurant
	err    error
	calls  int
}

func (s *stubRestaurantRepo) FindNear(context.Context, float64, float64, int) ([]domain.Restaurant, error) {
	s.calls++
	return s.nearby, s.err
}

type memoryCache struct {
	entries map[string]any
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]any{}}
}

func (m *memoryCache) Get(_ context.Context, key string, out any) (bool, error) {
	v, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	if dst, ok := out.(*RecommendOutcome); ok {
		*dst = *(v.(*RecommendOutcome))
		return true, nil
	}
	return false, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.sets++
	if v, ok := value.(*RecommendOutcome); ok {
		clone := *v
		m.entries[key] = &clone
		return nil
	}
	m.entries[key] = value
	return nil
}

func catalogue() []domain.Restaurant {
	return []domain.Restaurant{
		{ID: "1", Name: "곰곰 떡볶이", Categories: []string{"분식"}},
		{ID: "2", Name: "사당 국밥", Categories: []string{"한식"}},
		{ID: "3", Name: "마라 공방", Categories: []string{"중식"}},
		{ID: "4", Name: "숯불 치킨", Categories: []string{"치킨"}},
	}
}

func TestRecommendNoNearby(t *testing.T) {
	svc := NewRecommendService(&stubRestaurantRepo{}, nil, nil)
	_, err := svc.Recommend(context.Background(), RecommendQuery{Text: "밥", Lat: 1, Lng: 2})
	if !errors.Is(err, ErrNoNearbyRestaurants) {
		t.Fatalf("err = %v, want ErrNoNearbyRestaurants", err)
	}
}

func TestRecommendTextMatchRanksFirst(t *testing.T) {
	svc := NewRecommendService(&stubRestaurantRepo{nearby: catalogue()}, nil, nil)

	outcome, err := svc.Recommend(context.Background(), RecommendQuery{Text: "떡볶이", Lat: 1, Lng: 2, Mode: "recommend"})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(outcome.Results) == 0 {
		t.Fatal("no results")
	}
	if outcome.Results[0].Store != "곰곰 떡볶이" {
		t.Fatalf("top result = %q, want the name match", outcome.Results[0].Store)
	}
	if len(outcome.Results) != len(outcome.Restaurants) {
		t.Fatalf("results/restaurants length mismatch: %d != %d", len(outcome.Results), len(outcome.Restaurants))
	}
}

func TestRecommendTagHintsDriveTestMode(t *testing.T) {
	svc := NewRecommendService(&stubRestaurantRepo{nearby: catalogue()}, nil, nil)

	outcome, err := svc.Recommend(context.Background(), RecommendQuery{
		Lat: 1, Lng: 2, Mode: "test",
		Tags: []string{"spicy", "adventurous"},
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	// 마라 공방 matches both the spicy and adventurous hints.
	if outcome.Results[0].Store != "마라 공방" {
		t.Fatalf("top result = %q, want 마라 공방", outcome.Results[0].Store)
	}
	if outcome.Score["spicy"] != 1 || outcome.Score["adventurous"] != 1 {
		t.Fatalf("score = %v", outcome.Score)
	}
}

func TestRecommendNoMatchFallsBackDeterministically(t *testing.T) {
	repo := &stubRestaurantRepo{nearby: catalogue()}
	svc := NewRecommendService(repo, nil, nil)
	query := RecommendQuery{Text: "zzz없는메뉴zzz", Lat: 1, Lng: 2, Mode: "recommend"}

	first, err := svc.Recommend(context.Background(), query)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	second, err := svc.Recommend(context.Background(), query)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if len(first.Results) != 1 || len(second.Results) != 1 {
		t.Fatalf("fallback should pick exactly one: %d / %d", len(first.Results), len(second.Results))
	}
	if first.Results[0].Store != second.Results[0].Store {
		t.Fatalf("fallback pick not stable: %q vs %q", first.Results[0].Store, second.Results[0].Store)
	}
}

func TestRecommendUsesCache(t *testing.T) {
	repo := &stubRestaurantRepo{nearby: catalogue()}
	cache := newMemoryCache()
	svc := NewRecommendService(repo, cache, nil)
	query := RecommendQuery{Text: "국밥", Lat: 1, Lng: 2, Mode: "recommend"}

	if _, err := svc.Recommend(context.Background(), query); err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if _, err := svc.Recommend(context.Background(), query); err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("repository hit %d times, want 1 (second served from cache)", repo.calls)
	}
}

func TestRecommendBypassCacheRequeries(t *testing.T) {
	repo := &stubRestaurantRepo{nearby: catalogue()}
	cache := newMemoryCache()
	svc := NewRecommendService(repo, cache, nil)
	query := RecommendQuery{Text: "국밥", Lat: 1, Lng: 2, Mode: "recommend"}

	if _, err := svc.Recommend(context.Background(), query); err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	query.BypassCache = true
	if _, err := svc.Recommend(context.Background(), query); err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if repo.calls != 2 {
		t.Fatalf("repository hit %d times, want 2 with cache bypass", repo.calls)
	}
	if cache.sets != 2 {
		t.Fatalf("bypassed response not re-stored: %d sets", cache.sets)
	}
}

func TestRecommendCapsCandidatePool(t *testing.T) {
	var many []domain.Restaurant
	for i := 0; i < 10; i++ {
		many = append(many, domain.Restaurant{ID: string(rune('a' + i)), Name: "매운 집", Categories: []string{"한식"}})
	}
	svc := NewRecommendService(&stubRestaurantRepo{nearby: many}, nil, nil)

	outcome, err := svc.Recommend(context.Background(), RecommendQuery{Text: "매운", Lat: 1, Lng: 2})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(outcome.Results) != candidateLimit {
		t.Fatalf("pool size = %d, want %d", len(outcome.Results), candidateLimit)
	}
}

func TestExtractKeywordsDropsShortTokens(t *testing.T) {
	got := extractKeywords("곰곰 떡볶이 a 1")
	want := []string{"곰곰", "떡볶이"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
