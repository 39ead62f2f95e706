package geo

import (
	"context"
	"time"
)

// Coordinate is an immutable latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Fallback is the coordinate used when the device location cannot be
// read: 서울 사당역 부근, the service's default city centre.
var Fallback = Coordinate{Latitude: 37.484934, Longitude: 126.981321}

// Sensor reads the current device position. Implementations are
// expected to honour ctx cancellation.
type Sensor interface {
	Current(ctx context.Context) (Coordinate, error)
}

// Acquirer resolves a best-effort coordinate from a Sensor.
// Acquirer は端末位置を取得し、失敗時は既定座標へフォールバックする。
type Acquirer struct {
	sensor  Sensor
	timeout time.Duration
	maxAge  time.Duration

	last   Coordinate
	lastAt time.Time
	now    func() time.Time
}

// Option configures an Acquirer.
type Option func(*Acquirer)

// WithTimeout bounds a single sensor read.
func WithTimeout(d time.Duration) Option {
	return func(a *Acquirer) { a.timeout = d }
}

// WithMaxAge allows reuse of a previous reading younger than d,
// avoiding redundant high-power lookups.
func WithMaxAge(d time.Duration) Option {
	return func(a *Acquirer) { a.maxAge = d }
}

func withClock(now func() time.Time) Option {
	return func(a *Acquirer) { a.now = now }
}

// NewAcquirer wraps sensor with the default 10s timeout and a
// 5-minute cached-position allowance. A nil sensor is permitted and
// behaves like a device without location capability.
func NewAcquirer(sensor Sensor, opts ...Option) *Acquirer {
	a := &Acquirer{
		sensor:  sensor,
		timeout: 10 * time.Second,
		maxAge:  5 * time.Minute,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Acquire performs at most one sensor read and always returns a
// usable coordinate. Permission denial, timeout and missing device
// support all degrade to Fallback; the recommendation flow must never
// block on a sensor the user declined. No automatic retry is made;
// callers re-invoke Acquire explicitly if they want a fresh reading.
func (a *Acquirer) Acquire(ctx context.Context) Coordinate {
	if !a.lastAt.IsZero() && a.now().Sub(a.lastAt) <= a.maxAge {
		return a.last
	}
	if a.sensor == nil {
		return Fallback
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	coord, err := a.sensor.Current(ctx)
	if err != nil {
		return Fallback
	}

	a.last = coord
	a.lastAt = a.now()
	return coord
}
