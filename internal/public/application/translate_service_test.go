package application

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

type translatorFunc func(ctx context.Context, text string) (string, error)

func (f translatorFunc) Translate(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

func TestTranslateAllPerTextFailureKeepsSource(t *testing.T) {
	translator := translatorFunc(func(_ context.Context, text string) (string, error) {
		if text == "둘" {
			return "", errors.New("engine hiccup")
		}
		return strings.ToUpper(text), nil
	})
	svc := NewTranslationService(translator, nil)

	got := svc.TranslateAll(context.Background(), []string{"one", "둘", "three"})
	want := []string{"ONE", "둘", "THREE"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTranslateAllNilTranslatorIsIdentity(t *testing.T) {
	svc := NewTranslationService(nil, nil)
	in := []string{"하나", "", "셋"}
	got := svc.TranslateAll(context.Background(), in)
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("got %v, want input unchanged", got)
	}
}

func TestTranslateAllEmptySlotsSkipped(t *testing.T) {
	calls := 0
	translator := translatorFunc(func(_ context.Context, text string) (string, error) {
		calls++
		return text, nil
	})
	svc := NewTranslationService(translator, nil)

	out := svc.TranslateAll(context.Background(), []string{"", "하나", ""})
	if len(out) != 3 {
		t.Fatalf("length = %d, want 3", len(out))
	}
	if calls != 1 {
		t.Fatalf("translator called %d times, want 1", calls)
	}
}
