package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	adminapp "github.com/gomgom-ai/gomgom-services/app/internal/admin/application"
	"github.com/gomgom-ai/gomgom-services/app/internal/config"
	"github.com/gomgom-ai/gomgom-services/app/internal/infrastructure/external"
	mongodoc "github.com/gomgom-ai/gomgom-services/app/internal/infrastructure/mongo"
	adminhttp "github.com/gomgom-ai/gomgom-services/app/internal/interfaces/http/admin"
	commonhttp "github.com/gomgom-ai/gomgom-services/app/internal/interfaces/http/common"
	publichttp "github.com/gomgom-ai/gomgom-services/app/internal/interfaces/http/public"
	publicapp "github.com/gomgom-ai/gomgom-services/app/internal/public/application"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Server manages the HTTP lifecycle and injects application services
// into the public and admin handler sets. It is the composition root:
// infrastructure wiring lives here, domain logic does not.
type Server struct {
	logger   *log.Logger
	client   *mongo.Client
	database *mongo.Database
	location *time.Location

	recommendService  publicapp.RecommendService
	restaurantService publicapp.RestaurantQueryService
	translateService  publicapp.TranslationService
	authService       *publichttp.AuthService
	adminRestaurants  adminapp.RestaurantService

	jwtSecret      []byte
	jwtIssuer      string
	adminToken     string
	addr           string
	allowedOrigins []string
}

type authenticatedUser = commonhttp.AuthenticatedUser

// New builds a fully wired Server from config and a connected Mongo
// client.
func New(cfg config.Config, client *mongo.Client) *Server {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.FixedZone("KST", 9*60*60)
		cfg.ServerLog.Printf("타임존 %s 로드 실패: %v, KST를 사용합니다", cfg.Timezone, err)
	}

	srv := &Server{
		logger:         cfg.ServerLog,
		client:         client,
		database:       client.Database(cfg.MongoDatabase),
		location:       loc,
		jwtSecret:      append([]byte(nil), cfg.JWTSecret...),
		jwtIssuer:      cfg.JWTIssuer,
		adminToken:     cfg.AdminToken,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
	}

	indexCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	restaurantRepo := mongodoc.NewRestaurantRepository(srv.database, cfg.RestaurantCollection)
	userRepo := mongodoc.NewUserRepository(srv.database, cfg.UserCollection)
	cacheRepo := mongodoc.NewCacheRepository(indexCtx, srv.database, cfg.CacheCollection)
	adminRestaurantRepo := mongodoc.NewAdminRestaurantRepository(srv.database, cfg.RestaurantCollection)

	httpClient := &http.Client{Timeout: 10 * time.Second}

	var geocoder publicapp.Geocoder
	if cfg.KakaoRESTKey != "" {
		geocoder = external.NewKakaoGeocoder(cfg.KakaoRESTKey, "", httpClient)
	}
	var translator publicapp.Translator
	if cfg.TranslatorEndpoint != "" {
		translator = external.NewTranslator(cfg.TranslatorEndpoint, httpClient)
	}

	srv.recommendService = publicapp.NewRecommendService(restaurantRepo, cacheRepo, cfg.ServerLog)
	srv.restaurantService = publicapp.NewRestaurantQueryService(restaurantRepo, geocoder, cacheRepo, cfg.ServerLog)
	srv.translateService = publicapp.NewTranslationService(translator, cfg.ServerLog)
	srv.adminRestaurants = adminapp.NewRestaurantService(adminRestaurantRepo)

	srv.authService = publichttp.NewAuthService(publichttp.AuthConfig{
		Users:            userRepo,
		Secret:           srv.jwtSecret,
		Issuer:           cfg.JWTIssuer,
		TokenLifetime:    cfg.TokenLifetime,
		Logger:           cfg.ServerLog,
		KakaoClientID:    cfg.KakaoClientID,
		KakaoRedirectURI: cfg.KakaoRedirectURI,
		HTTPClient:       httpClient,
	})

	return srv
}

// Run starts the HTTP server and assembles routing and middleware.
func (s *Server) Run() error {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:       s.logger,
		Recommends:   s.recommendService,
		Restaurants:  s.restaurantService,
		Translations: s.translateService,
		Auth:         s.authService,
	})
	publicHandler.Register(router, s.authMiddleware)

	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:            s.logger,
		RestaurantService: s.adminRestaurants,
	})
	router.Route("/admin", func(r chi.Router) {
		r.Use(s.adminAuthMiddleware)
		adminHandler.Register(r)
	})

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP 서버 시작: http://%s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// withCORS grants cross-origin access to the configured origins.
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler reports Mongo connectivity for monitoring probes.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		s.writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().In(s.location).Format(time.RFC3339),
		})
	}
}

// authMiddleware validates the bearer JWT and stores the authenticated
// user in the request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := bearerToken(r)
		if err != nil {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}

		claims, err := s.parseAuthToken(tokenString)
		if err != nil {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}

		user := authenticatedUser{
			ID:    claims.Subject,
			Email: claims.Email,
			Name:  claims.Name,
		}

		ctx := commonhttp.ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminAuthMiddleware guards the admin surface with a static API token.
func (s *Server) adminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.adminToken == "" {
			s.writeJSON(w, http.StatusForbidden, map[string]string{"error": "관리자 API가 비활성화되어 있습니다"})
			return
		}

		tokenString, err := bearerToken(r)
		if err != nil {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}
		if subtle.ConstantTimeCompare([]byte(tokenString), []byte(s.adminToken)) != 1 {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "관리자 토큰이 올바르지 않습니다"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, error) {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("Authorization 헤더가 없습니다")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", fmt.Errorf("Bearer 토큰을 지정해 주세요")
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
	if tokenString == "" {
		return "", fmt.Errorf("액세스 토큰이 비어 있습니다")
	}
	return tokenString, nil
}

// parseAuthToken verifies the signature and issuer of an access token.
func (s *Server) parseAuthToken(tokenString string) (*authClaims, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return s.jwtSecret, nil
	}, jwt.WithLeeway(30*time.Second))

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("액세스 토큰이 유효하지 않습니다")
	}
	if s.jwtIssuer != "" && claims.Issuer != s.jwtIssuer {
		return nil, fmt.Errorf("액세스 토큰이 유효하지 않습니다")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("액세스 토큰이 유효하지 않습니다")
	}

	return claims, nil
}

type authClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// writeJSON centralises Content-Type handling and error logging for
// server-level responses.
func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Printf("JSON 인코딩에 실패: %v", err)
	}
}

// shutdown disconnects the Mongo client with a bounded timeout.
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Printf("MongoDB 연결 종료 중 오류: %v", err)
	}
}

// waitForShutdown watches both ListenAndServe and OS signals and drives
// graceful shutdown.
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatalf("서버가 비정상 종료되었습니다: %v", err)
		}
	case sig := <-sigChan:
		srv.logger.Printf("시그널 %s 수신. 서버 종료를 시작합니다.", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("서버 종료 중 오류: %v", err)
		}
	}

	srv.shutdown(context.Background())
}
