package config

import (
	"log"
	"os"
	"strings"
	"time"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                 string
	MongoURI             string
	MongoDatabase        string
	RestaurantCollection string
	UserCollection       string
	CacheCollection      string
	Timeout              time.Duration
	Timezone             string
	ServerLog            *log.Logger

	JWTSecret     []byte
	JWTIssuer     string
	TokenLifetime time.Duration
	AdminToken    string

	KakaoRESTKey     string
	KakaoClientID    string
	KakaoRedirectURI string

	TranslatorEndpoint string
	AllowedOrigins     []string
}

// ClientConfig holds the settings the end-user CLI needs.
type ClientConfig struct {
	BaseURL         string
	SessionFilePath string
	Timeout         time.Duration
	Log             *log.Logger
}

// Load reads environment variables and returns a fully populated Config.
func Load() Config {
	timeout := 10 * time.Second
	if v := os.Getenv("MONGO_CONNECT_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	jwtSecret := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET"))
	if jwtSecret == "" {
		log.Fatal("AUTH_JWT_SECRET must be configured")
	}

	tokenLifetime := time.Hour
	if raw := strings.TrimSpace(os.Getenv("AUTH_TOKEN_LIFETIME")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			tokenLifetime = parsed
		}
	}

	cfg := Config{
		Addr:                 envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:             envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:        envOrDefault("MONGO_DB", "gomgom"),
		RestaurantCollection: envOrDefault("RESTAURANT_COLLECTION", "restaurants"),
		UserCollection:       envOrDefault("USER_COLLECTION", "users"),
		CacheCollection:      envOrDefault("CACHE_COLLECTION", "response_cache"),
		Timeout:              timeout,
		Timezone:             envOrDefault("TIMEZONE", "Asia/Seoul"),
		ServerLog:            log.New(os.Stdout, "[gomgom-api] ", log.LstdFlags|log.Lshortfile),
		JWTSecret:            []byte(jwtSecret),
		JWTIssuer:            envOrDefault("AUTH_JWT_ISSUER", "gomgom-auth"),
		TokenLifetime:        tokenLifetime,
		AdminToken:           strings.TrimSpace(os.Getenv("ADMIN_API_TOKEN")),
		KakaoRESTKey:         strings.TrimSpace(os.Getenv("KAKAO_REST_API_KEY")),
		KakaoClientID:        strings.TrimSpace(os.Getenv("KAKAO_CLIENT_ID")),
		KakaoRedirectURI:     envOrDefault("KAKAO_REDIRECT_URI", "http://localhost:8080/auth/kakao/callback"),
		TranslatorEndpoint:   strings.TrimSpace(os.Getenv("TRANSLATOR_ENDPOINT")),
		AllowedOrigins:       parseList("API_ALLOWED_ORIGINS", []string{"*"}),
	}

	cfg.ServerLog.Printf("loaded config: addr=%q db=%q translator=%q", cfg.Addr, cfg.MongoDatabase, cfg.TranslatorEndpoint)

	return cfg
}

// LoadClient reads the CLI-side environment.
func LoadClient() ClientConfig {
	timeout := 10 * time.Second
	if raw := strings.TrimSpace(os.Getenv("GOMGOM_TIMEOUT")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			timeout = parsed
		}
	}

	sessionPath := strings.TrimSpace(os.Getenv("GOMGOM_SESSION_FILE"))
	if sessionPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		sessionPath = home + "/.gomgom/session.json"
	}

	return ClientConfig{
		BaseURL:         envOrDefault("GOMGOM_API_URL", "http://localhost:8080"),
		SessionFilePath: sessionPath,
		Timeout:         timeout,
		Log:             log.New(os.Stderr, "[gomgom] ", log.LstdFlags),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
