// Package client is the shared authenticated HTTP client of the
// GomGom front end. Every request consults the token lifecycle guard
// before leaving, and any 401 response reactively forces logout.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gomgom-ai/gomgom-services/app/internal/session"
)

// DefaultTimeout bounds every request.
const DefaultTimeout = 10 * time.Second

// ErrUnauthorized marks a request rejected with 401. The session has
// already been torn down by the time a caller sees it.
var ErrUnauthorized = errors.New("client: 인증이 만료되었습니다")

// ErrTokenExpired marks a request refused locally because the stored
// credential had already expired; no network call was made.
var ErrTokenExpired = errors.New("client: 토큰이 만료되어 요청을 중단했습니다")

// StatusError is a transport-level failure: the server answered with
// a non-success status. It is retryable from the caller's view.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("client: 서버 응답 오류 (status=%d)", e.Status)
}

// Client talks to the GomGom backend API.
type Client struct {
	baseURL string
	http    *http.Client
	guard   *session.Guard
	store   session.Store
	logger  *log.Logger
}

// Config defines the client dependencies.
type Config struct {
	BaseURL string
	Guard   *session.Guard
	Store   session.Store
	Logger  *log.Logger
	// HTTPClient overrides the default 10s-timeout client, mostly
	// for tests.
	HTTPClient *http.Client
}

// New builds a Client. Guard and Store may be nil for anonymous use.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		guard:   cfg.Guard,
		store:   cfg.Store,
		logger:  cfg.Logger,
	}
}

// do sends req, attaching the bearer token when a live session
// exists. An expired token aborts before the network; a 401 answer
// invalidates the session and surfaces ErrUnauthorized.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.guard != nil {
		if c.guard.CheckAndHandle() {
			return nil, ErrTokenExpired
		}
		if token := c.guard.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		if c.guard != nil {
			c.guard.Invalidate("unauthorized")
		}
		return nil, ErrUnauthorized
	}
	return resp, nil
}

// getJSON issues a GET and decodes a 2xx JSON body into out.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// postJSON issues a POST with a JSON body and decodes the response.
func (c *Client) postJSON(ctx context.Context, url string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return &StatusError{Status: resp.StatusCode, Body: string(body)}
}
