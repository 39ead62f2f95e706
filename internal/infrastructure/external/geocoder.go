package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const kakaoCoordToAddressURL = "https://dapi.kakao.com/v2/local/geo/coord2address.json"

// KakaoGeocoder resolves coordinates into Korean road addresses via
// the Kakao local API.
type KakaoGeocoder struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewKakaoGeocoder builds a geocoder with apiKey. baseURL overrides
// the Kakao endpoint when non-empty, mostly for tests.
func NewKakaoGeocoder(apiKey, baseURL string, httpClient *http.Client) *KakaoGeocoder {
	if baseURL == "" {
		baseURL = kakaoCoordToAddressURL
	}
	return &KakaoGeocoder{apiKey: apiKey, baseURL: baseURL, http: httpClient}
}

// Address reverse-geocodes lat/lng. Kakao puts longitude in x and
// latitude in y.
func (g *KakaoGeocoder) Address(ctx context.Context, lat, lng float64) (string, error) {
	params := url.Values{}
	params.Set("x", fmt.Sprintf("%f", lng))
	params.Set("y", fmt.Sprintf("%f", lat))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "KakaoAK "+g.apiKey)

	resp, err := g.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("external: 주소 변환 응답 오류 (status=%d)", resp.StatusCode)
	}

	var payload struct {
		Documents []struct {
			Address struct {
				AddressName string `json:"address_name"`
			} `json:"address"`
		} `json:"documents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if len(payload.Documents) == 0 {
		return "", nil
	}
	return payload.Documents[0].Address.AddressName, nil
}
