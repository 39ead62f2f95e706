package public

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gomgom-ai/gomgom-services/app/internal/interfaces/http/common"
	publicapp "github.com/gomgom-ai/gomgom-services/app/internal/public/application"
	"github.com/gomgom-ai/gomgom-services/app/internal/public/domain"
)

// recommendResultHandler serves both recommendation endpoints; mode
// distinguishes free-text recommendation from the taste-test result.
func (h *Handler) recommendResultHandler(mode string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := parseRecommendQuery(r, mode)
		if err != nil {
			common.WriteJSON(h.logger, w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}

		outcome, err := h.recommends.Recommend(r.Context(), query)
		if errors.Is(err, publicapp.ErrNoNearbyRestaurants) {
			common.WriteDetail(h.logger, w, http.StatusNotFound, "주변에 음식점이 없습니다.")
			return
		}
		if err != nil {
			h.logger.Printf("추천 처리 실패: %v", err)
			common.WriteDetail(h.logger, w, http.StatusInternalServerError, "추천 결과를 불러오지 못했습니다.")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildRecommendResponse(query, outcome, mode))
	}
}

// parseRecommendQuery validates the query tuple. The tag vector
// arrives either comma-joined under types or expanded as type1..type6;
// both are accepted, the former taking precedence.
func parseRecommendQuery(r *http.Request, mode string) (publicapp.RecommendQuery, error) {
	values := r.URL.Query()

	lat, err := strconv.ParseFloat(values.Get("lat"), 64)
	if err != nil {
		return publicapp.RecommendQuery{}, fmt.Errorf("lat 값이 올바르지 않습니다")
	}
	lng, err := strconv.ParseFloat(values.Get("lng"), 64)
	if err != nil {
		return publicapp.RecommendQuery{}, fmt.Errorf("lng 값이 올바르지 않습니다")
	}

	tags := splitTags(values.Get("types"))
	if len(tags) == 0 {
		for i := 1; i <= 6; i++ {
			if t := strings.TrimSpace(values.Get(fmt.Sprintf("type%d", i))); t != "" {
				tags = append(tags, t)
			}
		}
	}
	if mode == "test" && len(tags) == 0 {
		return publicapp.RecommendQuery{}, fmt.Errorf("types 값이 필요합니다")
	}

	if m := values.Get("mode"); m != "" {
		mode = m
	}

	return publicapp.RecommendQuery{
		Text:        strings.TrimSpace(values.Get("text")),
		Lat:         lat,
		Lng:         lng,
		Mode:        mode,
		Tags:        tags,
		BypassCache: values.Get("dummy") != "" || values.Get("rand") != "",
	}, nil
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

func buildRecommendResponse(query publicapp.RecommendQuery, outcome *publicapp.RecommendOutcome, mode string) recommendResultResponse {
	resp := recommendResultResponse{
		Results:     make([]recommendationResponse, 0, len(outcome.Results)),
		Restaurants: make([]recommendRestaurantResponse, 0, len(outcome.Restaurants)),
	}

	for _, rec := range outcome.Results {
		resp.Results = append(resp.Results, recommendationResponse{
			Store:       rec.Store,
			Description: rec.Description,
			Category:    rec.Category,
			Keywords:    rec.Keywords,
			LogoURL:     rec.LogoURL,
			Address:     rec.Address,
		})
	}
	if len(resp.Results) > 0 {
		resp.Result = &resp.Results[0]
	}

	for _, r := range outcome.Restaurants {
		resp.Restaurants = append(resp.Restaurants, buildRecommendRestaurant(r))
	}
	if len(outcome.Restaurants) > 0 {
		resp.Address = outcome.Restaurants[0].Address
	}

	if mode == "test" {
		resp.Text = query.Text
		lat, lng := query.Lat, query.Lng
		resp.Lat, resp.Lng = &lat, &lng
		resp.Types = query.Tags
		resp.Score = outcome.Score
	}
	return resp
}

func buildRecommendRestaurant(r domain.Restaurant) recommendRestaurantResponse {
	address := r.Address
	if address == "" {
		address = "주소 정보 없음"
	}
	return recommendRestaurantResponse{
		Name:       r.Name,
		ReviewAvg:  strconv.FormatFloat(r.ReviewAvg, 'f', 1, 64),
		Address:    address,
		ID:         r.ID,
		Categories: strings.Join(r.Categories, ", "),
		LogoURL:    r.LogoURL,
	}
}
