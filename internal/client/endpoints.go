package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/gomgom-ai/gomgom-services/app/internal/geo"
	"github.com/gomgom-ai/gomgom-services/app/internal/recommend"
	"github.com/gomgom-ai/gomgom-services/app/internal/session"
)

// FetchRecommendation implements recommend.Fetcher. The tag vector is
// comma-joined into types; the server expands it into type1..typeN.
func (c *Client) FetchRecommendation(ctx context.Context, key recommend.Key, dummy string) (recommend.Payload, error) {
	path := "/api/v1/recommend_result"
	if key.Mode == recommend.ModeTest {
		path = "/api/v1/test_result"
	}

	params := url.Values{}
	params.Set("text", key.Text)
	params.Set("lat", fmt.Sprintf("%f", key.Coordinate.Latitude))
	params.Set("lng", fmt.Sprintf("%f", key.Coordinate.Longitude))
	params.Set("mode", string(key.Mode))
	if len(key.Tags) > 0 {
		params.Set("types", strings.Join(key.Tags, ","))
	}
	if dummy != "" {
		params.Set("dummy", dummy)
	}

	var payload recommend.Payload
	err := c.getJSON(ctx, c.baseURL+path+"?"+params.Encode(), &payload)
	return payload, err
}

// TranslateChunk implements translate.Endpoint against the backend's
// chunk endpoint: a JSON string array in, translatedTexts out.
func (c *Client) TranslateChunk(ctx context.Context, texts []string) ([]string, error) {
	body, err := json.Marshal(texts)
	if err != nil {
		return nil, err
	}

	var resp struct {
		TranslatedTexts []string `json:"translatedTexts"`
	}
	if err := c.postJSON(ctx, c.baseURL+"/api/v1/translate", bytes.NewReader(body), "application/json", &resp); err != nil {
		return nil, err
	}
	if len(resp.TranslatedTexts) != len(texts) {
		return nil, fmt.Errorf("client: 번역 결과 길이가 일치하지 않습니다 (%d != %d)", len(resp.TranslatedTexts), len(texts))
	}
	return resp.TranslatedTexts, nil
}

// RestaurantListItem is one nearby establishment as listed by the
// backend.
type RestaurantListItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Categories  []string `json:"categories"`
	ReviewAvg   float64  `json:"review_avg"`
	ReviewCount int      `json:"review_count"`
	LogoURL     string   `json:"logo_url"`
	DeliveryFee struct {
		Basic string `json:"basic"`
	} `json:"delivery_fee_to_display"`
}

// restaurantListPayload covers both observed shapes: a bare array and
// an object wrapping the array with a resolved address.
type restaurantListPayload struct {
	Restaurants []RestaurantListItem `json:"restaurants"`
	Address     string               `json:"address"`
}

// Restaurants lists establishments near coord together with the
// reverse-geocoded address when the backend can resolve one.
func (c *Client) Restaurants(ctx context.Context, coord geo.Coordinate) ([]RestaurantListItem, string, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", coord.Latitude))
	params.Set("lng", fmt.Sprintf("%f", coord.Longitude))

	var payload restaurantListPayload
	if err := c.getJSON(ctx, c.baseURL+"/api/v1/restaurants?"+params.Encode(), &payload); err != nil {
		return nil, "", err
	}
	return payload.Restaurants, payload.Address, nil
}

// TokenResponse is the credential envelope the auth endpoints return.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Nickname    string `json:"nickname,omitempty"`
}

// Login exchanges email/password for a bearer token and persists the
// session fields in one overwrite.
func (c *Client) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var token TokenResponse
	err := c.postJSON(ctx, c.baseURL+"/auth/login", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &token)
	if err != nil {
		return TokenResponse{}, err
	}

	if c.store != nil {
		nickname := token.Nickname
		if nickname == "" {
			nickname = email
		}
		if err := c.store.Save(session.Credentials{
			AccessToken: token.AccessToken,
			Email:       email,
			Nickname:    nickname,
		}); err != nil {
			return TokenResponse{}, err
		}
	}
	return token, nil
}

// RegisterRequest carries a new account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Register creates an account; the caller logs in afterwards.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}
	return c.postJSON(ctx, c.baseURL+"/auth/register", bytes.NewReader(body), "application/json", nil)
}

// Profile is the authenticated user's own record.
type Profile struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// Me fetches the profile behind the bearer token.
func (c *Client) Me(ctx context.Context) (Profile, error) {
	var profile Profile
	err := c.getJSON(ctx, c.baseURL+"/auth/me", &profile)
	return profile, err
}

// KakaoLoginURL asks the backend for the provider authorize URL.
func (c *Client) KakaoLoginURL(ctx context.Context) (string, error) {
	var resp struct {
		AuthURL string `json:"auth_url"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/auth/kakao/login", &resp); err != nil {
		return "", err
	}
	return resp.AuthURL, nil
}

// KakaoCallback completes the OAuth code exchange and persists the
// resulting session like Login does.
func (c *Client) KakaoCallback(ctx context.Context, code string) (TokenResponse, error) {
	var token TokenResponse
	if err := c.getJSON(ctx, c.baseURL+"/auth/kakao/callback?code="+url.QueryEscape(code), &token); err != nil {
		return TokenResponse{}, err
	}

	if c.store != nil && token.AccessToken != "" {
		nickname := token.Nickname
		if nickname == "" {
			nickname = "kakao"
		}
		if err := c.store.Save(session.Credentials{
			AccessToken: token.AccessToken,
			Email:       nickname + "@kakao",
			Nickname:    nickname,
		}); err != nil {
			return TokenResponse{}, err
		}
	}
	return token, nil
}
