package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	adminapp "github.com/gomgom-ai/gomgom-services/app/internal/admin/application"
	"github.com/gomgom-ai/gomgom-services/app/internal/interfaces/http/common"
	"github.com/gomgom-ai/gomgom-services/app/internal/public/domain"
)

const maxRestaurantRequestBody = 1 << 20

func (h *Handler) restaurantListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		queryValues := r.URL.Query()
		page, _ := common.ParsePositiveInt(queryValues.Get("page"), 1)
		limit, _ := common.ParsePositiveInt(queryValues.Get("limit"), 20)

		restaurants, err := h.restaurantService.List(ctx, page, limit)
		if err != nil {
			h.logger.Printf("관리자 음식점 목록 조회 실패: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "음식점 목록을 가져오지 못했습니다"})
			return
		}

		items := make([]adminRestaurantResponse, 0, len(restaurants))
		for _, restaurant := range restaurants {
			items = append(items, adminRestaurantDomainToResponse(restaurant))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items, "page": page})
	}
}

func (h *Handler) restaurantUpsertHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adminRestaurantUpsertRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxRestaurantRequestBody)).Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "요청 형식이 올바르지 않습니다"})
			return
		}

		restaurant := domain.Restaurant{
			ID:          strings.TrimSpace(req.ID),
			Name:        strings.TrimSpace(req.Name),
			Categories:  req.Categories,
			Address:     strings.TrimSpace(req.Address),
			LogoURL:     strings.TrimSpace(req.LogoURL),
			Phone:       strings.TrimSpace(req.Phone),
			ReviewAvg:   req.ReviewAvg,
			ReviewCount: req.ReviewCount,
			DeliveryFee: domain.DeliveryFeeDisplay{Basic: strings.TrimSpace(req.DeliveryFeeBasic)},
			Location:    domain.GeoPoint{Longitude: req.Lng, Latitude: req.Lat},
			OpenHours:   strings.TrimSpace(req.OpenHours),
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := h.restaurantService.Upsert(ctx, restaurant); err != nil {
			if errors.Is(err, adminapp.ErrInvalidRestaurant) {
				common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			h.logger.Printf("관리자 음식점 저장 실패 id=%s err=%v", restaurant.ID, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "음식점 저장에 실패했습니다"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, adminRestaurantDomainToResponse(restaurant))
	}
}
