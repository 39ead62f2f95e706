package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gomgom-ai/gomgom-services/app/internal/geo"
	"github.com/gomgom-ai/gomgom-services/app/internal/recommend"
	"github.com/gomgom-ai/gomgom-services/app/internal/session"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: jwt.NewNumericDate(exp)}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func loggedInClient(t *testing.T, baseURL string, exp time.Time) (*Client, *session.MemoryStore, <-chan session.Event) {
	t.Helper()
	store := session.NewMemoryStore()
	if err := store.Save(session.Credentials{
		AccessToken: signedToken(t, exp),
		Email:       "gom@example.com",
		Nickname:    "곰곰",
	}); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	broadcaster := session.NewBroadcaster()
	events := broadcaster.Subscribe()
	guard := session.NewGuard(store, broadcaster, nil)

	c := New(Config{BaseURL: baseURL, Guard: guard, Store: store})
	return c, store, events
}

func TestDoAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"results": []any{map[string]string{"store": "a"}}})
	}))
	defer srv.Close()

	c, store, _ := loggedInClient(t, srv.URL, time.Now().Add(time.Hour))
	creds, _ := store.Load()

	_, err := c.FetchRecommendation(context.Background(), recommend.Key{
		Text:       "밥",
		Coordinate: geo.Coordinate{Latitude: 1, Longitude: 2},
		Mode:       recommend.ModeRecommend,
	}, "")
	if err != nil {
		t.Fatalf("FetchRecommendation: %v", err)
	}
	if gotAuth != "Bearer "+creds.AccessToken {
		t.Fatalf("Authorization = %q", gotAuth)
	}
}

func TestDoExpiredTokenAbortsBeforeNetwork(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
	}))
	defer srv.Close()

	c, store, events := loggedInClient(t, srv.URL, time.Now().Add(-time.Minute))

	_, err := c.Me(context.Background())
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
	if hits != 0 {
		t.Fatalf("request reached the server %d times", hits)
	}

	creds, _ := store.Load()
	if creds != (session.Credentials{}) {
		t.Fatalf("session not cleared: %+v", creds)
	}
	select {
	case ev := <-events:
		if ev.Reason != "expired" {
			t.Fatalf("reason = %q, want expired", ev.Reason)
		}
	default:
		t.Fatal("no logout event broadcast")
	}
}

func TestDo401TearsDownSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, store, events := loggedInClient(t, srv.URL, time.Now().Add(time.Hour))

	_, err := c.Me(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}

	creds, _ := store.Load()
	if creds != (session.Credentials{}) {
		t.Fatalf("session not cleared after 401: %+v", creds)
	}
	select {
	case ev := <-events:
		if ev.Reason != "unauthorized" {
			t.Fatalf("reason = %q, want unauthorized", ev.Reason)
		}
	default:
		t.Fatal("no logout event broadcast after 401")
	}
}

func TestFetchRecommendationBinding(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		json.NewEncoder(w).Encode(map[string]any{"results": []any{map[string]string{"store": "a"}}})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	key := recommend.Key{
		Coordinate: geo.Coordinate{Latitude: 37.5, Longitude: 127.0},
		Tags:       []string{"active", "spicy"},
		Mode:       recommend.ModeTest,
	}
	if _, err := c.FetchRecommendation(context.Background(), key, "busted"); err != nil {
		t.Fatalf("FetchRecommendation: %v", err)
	}

	if gotPath != "/api/v1/test_result" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotQuery["types"] != "active,spicy" {
		t.Fatalf("types = %q", gotQuery["types"])
	}
	if gotQuery["dummy"] != "busted" {
		t.Fatalf("dummy = %q", gotQuery["dummy"])
	}
	if gotQuery["mode"] != "test" {
		t.Fatalf("mode = %q", gotQuery["mode"])
	}
}

func TestTranslateChunkLengthMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"translatedTexts": []string{"only-one"}})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	if _, err := c.TranslateChunk(context.Background(), []string{"하나", "둘"}); err == nil {
		t.Fatal("length mismatch accepted")
	}
}

func TestLoginPersistsSessionFields(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		if r.PostFormValue("username") != "gom@example.com" {
			t.Errorf("username = %q", r.PostFormValue("username"))
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": token,
			"token_type":   "bearer",
			"expires_in":   3600,
			"nickname":     "곰곰",
		})
	}))
	defer srv.Close()

	store := session.NewMemoryStore()
	c := New(Config{BaseURL: srv.URL, Store: store})

	resp, err := c.Login(context.Background(), "gom@example.com", "pw12345678")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken != token {
		t.Fatalf("access token not echoed")
	}

	creds, _ := store.Load()
	want := session.Credentials{AccessToken: token, Email: "gom@example.com", Nickname: "곰곰"}
	if creds != want {
		t.Fatalf("persisted %+v, want %+v", creds, want)
	}
}

func TestStatusErrorCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Me(context.Background())

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if statusErr.Status != http.StatusBadGateway {
		t.Fatalf("status = %d", statusErr.Status)
	}
}
