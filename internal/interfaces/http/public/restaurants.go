package public

import (
	"net/http"
	"strconv"

	"github.com/gomgom-ai/gomgom-services/app/internal/interfaces/http/common"
)

func (h *Handler) restaurantListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values := r.URL.Query()
		lat, latErr := strconv.ParseFloat(values.Get("lat"), 64)
		lng, lngErr := strconv.ParseFloat(values.Get("lng"), 64)
		if latErr != nil || lngErr != nil {
			common.WriteJSON(h.logger, w, http.StatusUnprocessableEntity, map[string]string{"error": "lat/lng 값이 필요합니다"})
			return
		}

		restaurants, address, err := h.restaurants.Near(r.Context(), lat, lng)
		if err != nil {
			h.logger.Printf("가게 목록 조회 실패: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "가게 목록을 불러오지 못했습니다"})
			return
		}

		resp := restaurantListResponse{
			Restaurants: make([]restaurantListItemResponse, 0, len(restaurants)),
			Address:     address,
		}
		for _, r := range restaurants {
			item := restaurantListItemResponse{
				ID:          r.ID,
				Name:        r.Name,
				Categories:  r.Categories,
				ReviewAvg:   r.ReviewAvg,
				ReviewCount: r.ReviewCount,
				LogoURL:     r.LogoURL,
			}
			item.DeliveryFee.Basic = r.DeliveryFee.Basic
			resp.Restaurants = append(resp.Restaurants, item)
		}

		common.WriteJSON(h.logger, w, http.StatusOK, resp)
	}
}
