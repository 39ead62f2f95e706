package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gomgom-ai/gomgom-services/app/internal/translate"
)

func upperPipeline() *translate.Pipeline {
	endpoint := translate.EndpointFunc(func(_ context.Context, texts []string) ([]string, error) {
		out := make([]string, len(texts))
		for i, t := range texts {
			out[i] = strings.ToUpper(t)
		}
		return out, nil
	})
	return translate.NewPipeline(endpoint, nil)
}

func TestTranslateCandidatesEachFieldIndependently(t *testing.T) {
	src := []Candidate{
		{Store: "gomgom", Description: "spicy stew", Category: "korean", Keywords: []string{"hot", "soup"}},
		{Store: "sushi ya", Description: "fresh fish", Category: "japanese", Keywords: []string{"raw"}},
	}

	got := TranslateCandidates(context.Background(), upperPipeline(), src)

	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	first := got[0]
	if first.Store != "GOMGOM" || first.Description != "SPICY STEW" || first.Category != "KOREAN" {
		t.Fatalf("fields not independently translated: %+v", first)
	}
	if first.Keywords[0] != "HOT" || first.Keywords[1] != "SOUP" {
		t.Fatalf("keywords = %v", first.Keywords)
	}
	if got[1].Keywords[0] != "RAW" {
		t.Fatalf("second candidate keywords = %v", got[1].Keywords)
	}

	// No field may leak into another: every slot carries its own text.
	if first.Description == first.Store {
		t.Fatal("description overwritten with store translation")
	}
}

func TestTranslateCandidatesLeavesOriginalsUntouched(t *testing.T) {
	src := []Candidate{{Store: "gomgom", Keywords: []string{"hot"}}}

	got := TranslateCandidates(context.Background(), upperPipeline(), src)

	if src[0].Store != "gomgom" || src[0].Keywords[0] != "hot" {
		t.Fatalf("source candidates mutated: %+v", src[0])
	}
	got[0].Keywords[0] = "changed"
	if src[0].Keywords[0] != "hot" {
		t.Fatal("translated set shares keyword backing array with source")
	}
}

func TestTranslateCandidatesOutageKeepsSourceText(t *testing.T) {
	endpoint := translate.EndpointFunc(func(context.Context, []string) ([]string, error) {
		return nil, errors.New("engine down")
	})
	pipeline := translate.NewPipeline(endpoint, nil)

	src := []Candidate{{Store: "곰곰식당", Description: "얼큰한 찌개"}}
	got := TranslateCandidates(context.Background(), pipeline, src)

	if got[0].Store != "곰곰식당" || got[0].Description != "얼큰한 찌개" {
		t.Fatalf("outage did not degrade to source text: %+v", got[0])
	}
}

func TestTranslateCandidatesEmptyInput(t *testing.T) {
	if got := TranslateCandidates(context.Background(), upperPipeline(), nil); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}
