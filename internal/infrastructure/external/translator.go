// Package external holds thin HTTP clients for the upstream services
// the API proxies: the translation engine and the Kakao local
// geocoder.
package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Translator calls a translation engine over HTTP. The endpoint takes
// {"text": ...} and answers {"translated": ...}.
type Translator struct {
	endpoint string
	http     *http.Client
}

// NewTranslator builds a translator client for endpoint.
func NewTranslator(endpoint string, httpClient *http.Client) *Translator {
	return &Translator{endpoint: endpoint, http: httpClient}
}

// Translate translates one text. Errors bubble up; the application
// layer decides how to degrade.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("external: 번역 엔진 응답 오류 (status=%d)", resp.StatusCode)
	}

	var payload struct {
		Translated string `json:"translated"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	return payload.Translated, nil
}
