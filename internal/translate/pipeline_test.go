package translate

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"
)

// upper is a deterministic stand-in endpoint.
func upper(_ context.Context, texts []string) ([]string, error) {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = strings.ToUpper(t)
	}
	return out, nil
}

func TestTranslatePreservesLengthAndOrder(t *testing.T) {
	p := NewPipeline(EndpointFunc(upper), nil).WithChunkSize(3)

	for _, n := range []int{0, 1, 2, 3, 4, 7, 9, 10} {
		texts := make([]string, n)
		for i := range texts {
			texts[i] = fmt.Sprintf("text-%d", i)
		}

		got := p.Translate(context.Background(), texts)
		if len(got) != n {
			t.Fatalf("n=%d: got %d outputs", n, len(got))
		}
		for i, s := range got {
			want := strings.ToUpper(texts[i])
			if s != want {
				t.Fatalf("n=%d: out[%d] = %q, want %q", n, i, s, want)
			}
		}
	}
}

func TestTranslateBlankSlotsStayInPlace(t *testing.T) {
	p := NewPipeline(EndpointFunc(upper), nil).WithChunkSize(2)

	texts := []string{"김치찌개", "", "  ", "된장찌개", ""}
	got := p.Translate(context.Background(), texts)

	want := []string{"김치찌개", "", "  ", "된장찌개", ""}
	want[0] = strings.ToUpper(want[0])
	want[3] = strings.ToUpper(want[3])
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTranslateOneChunkFailureDegradesOnlyThatChunk(t *testing.T) {
	var mu sync.Mutex
	call := 0
	endpoint := EndpointFunc(func(ctx context.Context, texts []string) ([]string, error) {
		mu.Lock()
		call++
		fail := texts[0] == "b1"
		mu.Unlock()
		if fail {
			return nil, errors.New("transport down")
		}
		return upper(ctx, texts)
	})

	var texts []string
	for i := 1; i <= 10; i++ {
		texts = append(texts, fmt.Sprintf("a%d", i))
	}
	for i := 1; i <= 10; i++ {
		texts = append(texts, fmt.Sprintf("b%d", i))
	}

	p := NewPipeline(endpoint, nil) // chunk size 10 → exactly two chunks
	got := p.Translate(context.Background(), texts)

	if len(got) != 20 {
		t.Fatalf("got %d outputs, want 20", len(got))
	}
	for i := 0; i < 10; i++ {
		if got[i] != strings.ToUpper(texts[i]) {
			t.Fatalf("a-chunk slot %d = %q, want translated", i, got[i])
		}
	}
	for i := 10; i < 20; i++ {
		if got[i] != texts[i] {
			t.Fatalf("b-chunk slot %d = %q, want source text %q", i, got[i], texts[i])
		}
	}
}

func TestTranslateTotalOutageReturnsInputUnchanged(t *testing.T) {
	endpoint := EndpointFunc(func(context.Context, []string) ([]string, error) {
		return nil, errors.New("engine unreachable")
	})
	p := NewPipeline(endpoint, nil).WithChunkSize(2)

	texts := []string{"하나", "둘", "셋"}
	got := p.Translate(context.Background(), texts)
	if !reflect.DeepEqual(got, texts) {
		t.Fatalf("got %q, want input unchanged", got)
	}
}

func TestTranslateLengthMismatchDegradesChunk(t *testing.T) {
	endpoint := EndpointFunc(func(_ context.Context, texts []string) ([]string, error) {
		return texts[:len(texts)-1], nil // short answer
	})
	p := NewPipeline(endpoint, nil).WithChunkSize(3)

	texts := []string{"하나", "둘", "셋"}
	got := p.Translate(context.Background(), texts)
	if !reflect.DeepEqual(got, texts) {
		t.Fatalf("got %q, want source texts for the malformed chunk", got)
	}
}

func TestTranslateChunkFanout(t *testing.T) {
	var mu sync.Mutex
	var sizes []int
	endpoint := EndpointFunc(func(ctx context.Context, texts []string) ([]string, error) {
		mu.Lock()
		sizes = append(sizes, len(texts))
		mu.Unlock()
		return upper(ctx, texts)
	})
	p := NewPipeline(endpoint, nil).WithChunkSize(4)

	texts := make([]string, 10)
	for i := range texts {
		texts[i] = fmt.Sprintf("t%d", i)
	}
	p.Translate(context.Background(), texts)

	total := 0
	for _, s := range sizes {
		if s > 4 {
			t.Fatalf("chunk of size %d exceeds limit 4", s)
		}
		total += s
	}
	if len(sizes) != 3 || total != 10 {
		t.Fatalf("got %d chunks covering %d texts, want 3 covering 10", len(sizes), total)
	}
}
