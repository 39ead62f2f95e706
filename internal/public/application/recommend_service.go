package application

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/gomgom-ai/gomgom-services/app/internal/public/domain"
)

// ErrNoNearbyRestaurants means the catalogue has nothing around the
// requested coordinate; the handler maps it to 404.
var ErrNoNearbyRestaurants = errors.New("application: 주변에 음식점이 없습니다")

const (
	recommendCacheTTL = 30 * time.Minute
	candidateLimit    = 5
	nearbyLimit       = 100
)

// tagHints maps each quiz taste type onto menu words it pulls toward.
// 취향 태그별로 끌어당기는 메뉴 키워드 목록.
var tagHints = map[string][]string{
	"active":      {"치킨", "피자", "족발", "곱창"},
	"calm":        {"카페", "백반", "정식", "죽"},
	"adventurous": {"마라", "타코", "쌀국수", "커리"},
	"familiar":    {"김치찌개", "된장", "국밥", "분식"},
	"spicy":       {"매운", "떡볶이", "마라", "불닭", "낙지"},
	"mild":        {"죽", "백반", "샌드위치", "우동"},
	"rich":        {"돈코츠", "곰탕", "설렁탕", "치즈"},
	"light":       {"샐러드", "냉면", "초밥", "쌀국수"},
	"drink":       {"호프", "포차", "치킨", "카페"},
	"dessert":     {"케이크", "디저트", "아이스크림", "빙수"},
	"trendy":      {"마라", "버거", "포케", "브런치"},
	"safe":        {"김밥", "국밥", "돈까스", "치킨"},
}

// recommendService implements RecommendService with a deterministic
// keyword-matching pick over nearby store names.
type recommendService struct {
	restaurants RestaurantRepository
	cache       ResponseCache
	logger      *log.Logger
}

// NewRecommendService wires the recommendation use case. cache may be
// nil, disabling response caching.
func NewRecommendService(restaurants RestaurantRepository, cache ResponseCache, logger *log.Logger) RecommendService {
	return &recommendService{restaurants: restaurants, cache: cache, logger: logger}
}

func cacheKey(q RecommendQuery) string {
	return fmt.Sprintf("recommend_%s_%s_%f_%f", q.Mode, q.Text, q.Lat, q.Lng)
}

func (s *recommendService) Recommend(ctx context.Context, query RecommendQuery) (*RecommendOutcome, error) {
	key := cacheKey(query)
	if s.cache != nil && !query.BypassCache {
		var cached RecommendOutcome
		if ok, err := s.cache.Get(ctx, key, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	nearby, err := s.restaurants.FindNear(ctx, query.Lat, query.Lng, nearbyLimit)
	if err != nil {
		return nil, err
	}
	if len(nearby) == 0 {
		return nil, ErrNoNearbyRestaurants
	}

	ranked := rankRestaurants(nearby, query)
	if len(ranked) == 0 {
		// No keyword hit anywhere: deterministic fallback pick so the
		// same query keeps answering the same way.
		ranked = []scored{{restaurant: nearby[pickIndex(key, len(nearby))]}}
	}
	if len(ranked) > candidateLimit {
		ranked = ranked[:candidateLimit]
	}

	outcome := &RecommendOutcome{Score: domain.ScoreTags(query.Tags)}
	for _, entry := range ranked {
		outcome.Results = append(outcome.Results, buildRecommendation(entry.restaurant, query))
		outcome.Restaurants = append(outcome.Restaurants, entry.restaurant)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, outcome, recommendCacheTTL); err != nil && s.logger != nil {
			s.logger.Printf("추천 응답 캐시 저장 실패: %v", err)
		}
	}
	return outcome, nil
}

type scored struct {
	restaurant domain.Restaurant
	score      int
}

// rankRestaurants scores every nearby restaurant against the query
// text and tag hints, highest first, dropping zero scores.
func rankRestaurants(nearby []domain.Restaurant, query RecommendQuery) []scored {
	textTokens := extractKeywords(query.Text)

	hints := make([]string, 0, len(query.Tags)*4)
	for _, tag := range query.Tags {
		hints = append(hints, tagHints[tag]...)
	}

	ranked := make([]scored, 0, len(nearby))
	for _, r := range nearby {
		nameTokens := extractKeywords(r.Name)
		score := 0
		for _, token := range textTokens {
			if containsToken(nameTokens, token) {
				score += 3
			}
			for _, category := range r.Categories {
				if strings.Contains(category, token) {
					score += 2
				}
			}
		}
		for _, hint := range hints {
			if strings.Contains(r.Name, hint) {
				score++
			}
			for _, category := range r.Categories {
				if strings.Contains(category, hint) {
					score++
				}
			}
		}
		if score > 0 {
			ranked = append(ranked, scored{restaurant: r, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	return ranked
}

func buildRecommendation(r domain.Restaurant, query RecommendQuery) domain.Recommendation {
	description := "당신에게 어울리는 인기 메뉴를 추천해요!"
	if text := strings.TrimSpace(query.Text); text != "" {
		description = fmt.Sprintf("'%s'와 어울리는 인기 메뉴를 추천해요!", text)
	} else if query.Mode == "test" && len(query.Tags) > 0 {
		description = "입맛 테스트 결과와 어울리는 가게예요!"
	}

	return domain.Recommendation{
		Store:       r.Name,
		Description: description,
		Category:    strings.Join(r.Categories, ", "),
		Keywords:    extractKeywords(r.Name),
		LogoURL:     r.LogoURL,
		Address:     r.Address,
	}
}

// extractKeywords splits text into tokens of at least two runes.
// Single-rune tokens are mostly particles and punctuation noise.
func extractKeywords(text string) []string {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	keywords := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if len([]rune(token)) > 1 {
			keywords = append(keywords, token)
		}
	}
	return keywords
}

func containsToken(tokens []string, target string) bool {
	for _, token := range tokens {
		if strings.Contains(token, target) || strings.Contains(target, token) {
			return true
		}
	}
	return false
}

// pickIndex derives a stable index in [0, n) from key.
func pickIndex(key string, n int) int {
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32() % uint32(n))
}
