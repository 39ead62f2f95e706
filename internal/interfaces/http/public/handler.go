package public

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	publicapp "github.com/gomgom-ai/gomgom-services/app/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger       *log.Logger
	recommends   publicapp.RecommendService
	restaurants  publicapp.RestaurantQueryService
	translations publicapp.TranslationService
	auth         *AuthService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger       *log.Logger
	Recommends   publicapp.RecommendService
	Restaurants  publicapp.RestaurantQueryService
	Translations publicapp.TranslationService
	Auth         *AuthService
}

// NewHandler constructs the public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:       cfg.Logger,
		recommends:   cfg.Recommends,
		restaurants:  cfg.Restaurants,
		translations: cfg.Translations,
		auth:         cfg.Auth,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/recommend_result", h.recommendResultHandler("recommend"))
		r.Get("/test_result", h.recommendResultHandler("test"))
		r.Post("/translate", h.translateHandler())
		r.Get("/restaurants", h.restaurantListHandler())
	})

	// 구버전 프런트 호환 경로.
	r.Get("/recommend_result", h.recommendResultHandler("recommend"))
	r.Get("/test_result", h.recommendResultHandler("test"))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.loginHandler())
		r.Post("/register", h.registerHandler())
		r.With(authMiddleware).Get("/me", h.meHandler())
		r.Get("/kakao/login", h.kakaoLoginHandler())
		r.Get("/kakao/callback", h.kakaoCallbackHandler())
	})
}
