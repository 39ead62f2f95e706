package geo

import (
	"context"
	"errors"
	"testing"
	"time"
)

type sensorFunc func(ctx context.Context) (Coordinate, error)

func (f sensorFunc) Current(ctx context.Context) (Coordinate, error) { return f(ctx) }

func TestAcquireNilSensorFallsBack(t *testing.T) {
	a := NewAcquirer(nil)
	got := a.Acquire(context.Background())
	if got != Fallback {
		t.Fatalf("got %+v, want fallback %+v", got, Fallback)
	}
}

func TestAcquireSensorErrorFallsBack(t *testing.T) {
	sensor := sensorFunc(func(context.Context) (Coordinate, error) {
		return Coordinate{}, errors.New("permission denied")
	})
	a := NewAcquirer(sensor)
	if got := a.Acquire(context.Background()); got != Fallback {
		t.Fatalf("got %+v, want fallback", got)
	}
}

func TestAcquireSensorTimeoutFallsBack(t *testing.T) {
	sensor := sensorFunc(func(ctx context.Context) (Coordinate, error) {
		<-ctx.Done()
		return Coordinate{}, ctx.Err()
	})
	a := NewAcquirer(sensor, WithTimeout(10*time.Millisecond))
	if got := a.Acquire(context.Background()); got != Fallback {
		t.Fatalf("got %+v, want fallback", got)
	}
}

func TestAcquireReturnsSensorReading(t *testing.T) {
	want := Coordinate{Latitude: 37.5, Longitude: 127.0}
	sensor := sensorFunc(func(context.Context) (Coordinate, error) {
		return want, nil
	})
	a := NewAcquirer(sensor)
	if got := a.Acquire(context.Background()); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestAcquireReusesFreshReading(t *testing.T) {
	calls := 0
	sensor := sensorFunc(func(context.Context) (Coordinate, error) {
		calls++
		return Coordinate{Latitude: 37.5, Longitude: 127.0}, nil
	})

	now := time.Now()
	a := NewAcquirer(sensor, WithMaxAge(5*time.Minute), withClock(func() time.Time { return now }))

	a.Acquire(context.Background())
	a.Acquire(context.Background())
	if calls != 1 {
		t.Fatalf("sensor called %d times, want 1", calls)
	}

	// A stale reading forces a fresh sensor call.
	now = now.Add(6 * time.Minute)
	a.Acquire(context.Background())
	if calls != 2 {
		t.Fatalf("sensor called %d times after staleness, want 2", calls)
	}
}

func TestAcquireErrorDoesNotCacheFallback(t *testing.T) {
	fail := true
	sensor := sensorFunc(func(context.Context) (Coordinate, error) {
		if fail {
			return Coordinate{}, errors.New("unavailable")
		}
		return Coordinate{Latitude: 35.1, Longitude: 129.0}, nil
	})
	a := NewAcquirer(sensor)

	if got := a.Acquire(context.Background()); got != Fallback {
		t.Fatalf("got %+v, want fallback", got)
	}

	fail = false
	want := Coordinate{Latitude: 35.1, Longitude: 129.0}
	if got := a.Acquire(context.Background()); got != want {
		t.Fatalf("got %+v after recovery, want %+v", got, want)
	}
}
