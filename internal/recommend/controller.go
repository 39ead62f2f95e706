package recommend

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/gomgom-ai/gomgom-services/app/internal/geo"
)

// Mode selects which backend query a Key drives.
type Mode string

const (
	// ModeRecommend keys the query by free text alone.
	ModeRecommend Mode = "recommend"
	// ModeTest additionally keys by the quiz tag vector.
	ModeTest Mode = "test"
)

// Key is the full query tuple for one recommendation fetch.
type Key struct {
	Text       string
	Coordinate geo.Coordinate
	Tags       []string
	Mode       Mode
}

// ErrMissingInput is a precondition failure: the result flow was
// reached without the inputs a query needs. Retrying cannot repair
// it; the caller routes home instead of offering a retry.
var ErrMissingInput = errors.New("recommend: required query input missing")

// Validate enforces the preconditions of the result flow before any
// network call is attempted.
func (k Key) Validate() error {
	if k.Coordinate == (geo.Coordinate{}) {
		return fmt.Errorf("%w: 위치 정보", ErrMissingInput)
	}
	switch k.Mode {
	case ModeTest:
		if len(k.Tags) == 0 {
			return fmt.Errorf("%w: 테스트 타입", ErrMissingInput)
		}
	default:
		if k.Text == "" {
			return fmt.Errorf("%w: 입력 텍스트", ErrMissingInput)
		}
	}
	return nil
}

// Fetcher issues the single backend query for a Key. dummy is the
// cache-busting token, empty on a plain fetch.
type Fetcher interface {
	FetchRecommendation(ctx context.Context, key Key, dummy string) (Payload, error)
}

// Controller owns the candidate pool for one query key. Fetch hits
// the network exactly once; Cycle rotates through the pre-fetched
// pool locally, bounding latency and backend load while a user
// repeatedly dismisses suggestions.
type Controller struct {
	fetcher Fetcher
	logger  *log.Logger
	set     *ResultSet
}

// NewController builds a controller over fetcher. logger may be nil.
func NewController(fetcher Fetcher, logger *log.Logger) *Controller {
	return &Controller{fetcher: fetcher, logger: logger}
}

// Fetch issues one request for key and installs the normalized pool.
// A response without a usable candidate returns ErrNoResult; any
// previous pool is kept so the caller can keep cycling it.
func (c *Controller) Fetch(ctx context.Context, key Key) (*ResultSet, error) {
	return c.fetch(ctx, key, "")
}

// Refetch is the explicit escape hatch: it discards the current pool
// and re-queries with a fresh cache-busting token, used when the
// caller wants a materially different answer for the same key.
func (c *Controller) Refetch(ctx context.Context, key Key) (*ResultSet, error) {
	c.set = nil
	return c.fetch(ctx, key, uuid.NewString())
}

func (c *Controller) fetch(ctx context.Context, key Key, dummy string) (*ResultSet, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	payload, err := c.fetcher.FetchRecommendation(ctx, key, dummy)
	if err != nil {
		return nil, err
	}

	set, err := Normalize(payload)
	if err != nil {
		return nil, err
	}

	if c.logger != nil {
		c.logger.Printf("추천 결과 %d건 수신 (mode=%s)", set.Len(), key.Mode)
	}
	c.set = set
	return set, nil
}

// Set returns the current pool, nil before the first successful fetch.
func (c *Controller) Set() *ResultSet { return c.set }

// Cycle rotates the current pool. ok is false before the first fetch
// or in the no-result state.
func (c *Controller) Cycle() (Candidate, bool) {
	if c.set == nil {
		return Candidate{}, false
	}
	return c.set.Cycle()
}
