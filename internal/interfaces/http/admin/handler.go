package admin

import (
	"log"

	"github.com/go-chi/chi/v5"
	adminapp "github.com/gomgom-ai/gomgom-services/app/internal/admin/application"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger            *log.Logger
	restaurantService adminapp.RestaurantService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger            *log.Logger
	RestaurantService adminapp.RestaurantService
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:            cfg.Logger,
		restaurantService: cfg.RestaurantService,
	}
}

// Register mounts admin routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/restaurants", h.restaurantListHandler())
	r.Post("/restaurants", h.restaurantUpsertHandler())
}
