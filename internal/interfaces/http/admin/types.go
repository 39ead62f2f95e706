package admin

import "github.com/gomgom-ai/gomgom-services/app/internal/public/domain"

// adminRestaurantUpsertRequest is the catalogue write payload.
type adminRestaurantUpsertRequest struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Categories       []string `json:"categories"`
	Address          string   `json:"address"`
	LogoURL          string   `json:"logo_url"`
	Phone            string   `json:"phone"`
	ReviewAvg        float64  `json:"review_avg"`
	ReviewCount      int      `json:"review_count"`
	DeliveryFeeBasic string   `json:"delivery_fee_basic"`
	Lat              float64  `json:"lat"`
	Lng              float64  `json:"lng"`
	OpenHours        string   `json:"open_hours"`
}

// adminRestaurantResponse is the catalogue read view.
type adminRestaurantResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Categories       []string `json:"categories"`
	Address          string   `json:"address"`
	LogoURL          string   `json:"logo_url"`
	Phone            string   `json:"phone"`
	ReviewAvg        float64  `json:"review_avg"`
	ReviewCount      int      `json:"review_count"`
	DeliveryFeeBasic string   `json:"delivery_fee_basic"`
	Lat              float64  `json:"lat"`
	Lng              float64  `json:"lng"`
	OpenHours        string   `json:"open_hours"`
}

func adminRestaurantDomainToResponse(restaurant domain.Restaurant) adminRestaurantResponse {
	return adminRestaurantResponse{
		ID:               restaurant.ID,
		Name:             restaurant.Name,
		Categories:       restaurant.Categories,
		Address:          restaurant.Address,
		LogoURL:          restaurant.LogoURL,
		Phone:            restaurant.Phone,
		ReviewAvg:        restaurant.ReviewAvg,
		ReviewCount:      restaurant.ReviewCount,
		DeliveryFeeBasic: restaurant.DeliveryFee.Basic,
		Lat:              restaurant.Location.Latitude,
		Lng:              restaurant.Location.Longitude,
		OpenHours:        restaurant.OpenHours,
	}
}
