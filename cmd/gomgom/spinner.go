package main

import (
	"fmt"
	"io"
	"time"
)

// SpinnerVariant enumerates the loading-indicator styles. Each
// variant has a fixed frame set; there is no free-form styling.
type SpinnerVariant int

const (
	// SpinnerDots grows a trail of dots, the classic "생각 중..."
	// indicator.
	SpinnerDots SpinnerVariant = iota
	// SpinnerPaws alternates bear-paw frames, the brand indicator.
	SpinnerPaws
	// SpinnerBar spins a single rotating bar, the most compact form.
	SpinnerBar
)

// ParseSpinnerVariant resolves the -spinner flag value.
func ParseSpinnerVariant(s string) (SpinnerVariant, error) {
	switch s {
	case "", "dots":
		return SpinnerDots, nil
	case "paws":
		return SpinnerPaws, nil
	case "bar":
		return SpinnerBar, nil
	default:
		return SpinnerDots, fmt.Errorf("알 수 없는 스피너 종류: %q (dots, paws, bar 중 하나)", s)
	}
}

func (v SpinnerVariant) frames() []string {
	switch v {
	case SpinnerPaws:
		return []string{"🐾    ", " 🐾   ", "  🐾  ", "   🐾 ", "    🐾"}
	case SpinnerBar:
		return []string{"|", "/", "-", "\\"}
	default:
		return []string{".  ", ".. ", "..."}
	}
}

// Spinner renders a terminal loading indicator while a fetch is in
// flight.
type Spinner struct {
	out     io.Writer
	variant SpinnerVariant
	message string
	done    chan struct{}
	stopped chan struct{}
}

// NewSpinner builds a spinner writing to out.
func NewSpinner(out io.Writer, variant SpinnerVariant, message string) *Spinner {
	return &Spinner{out: out, variant: variant, message: message}
}

// Start begins animating until Stop is called.
func (s *Spinner) Start() {
	s.done = make(chan struct{})
	s.stopped = make(chan struct{})
	frames := s.variant.frames()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(150 * time.Millisecond)
		defer ticker.Stop()

		i := 0
		for {
			select {
			case <-s.done:
				fmt.Fprintf(s.out, "\r%s\r", spaces(len(s.message)+8))
				return
			case <-ticker.C:
				fmt.Fprintf(s.out, "\r%s %s", s.message, frames[i%len(frames)])
				i++
			}
		}
	}()
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	if s.done == nil {
		return
	}
	close(s.done)
	<-s.stopped
	s.done = nil
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
