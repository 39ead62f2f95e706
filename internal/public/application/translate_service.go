package application

import (
	"context"
	"log"
)

// translationService fans a batch through the Translator one text at
// a time, substituting the source text on per-text failure so the
// output length always matches the input.
type translationService struct {
	translator Translator
	logger     *log.Logger
}

// NewTranslationService wires the translate use case. A nil
// translator degrades to identity passthrough.
func NewTranslationService(translator Translator, logger *log.Logger) TranslationService {
	return &translationService{translator: translator, logger: logger}
}

func (s *translationService) TranslateAll(ctx context.Context, texts []string) []string {
	out := make([]string, len(texts))
	for i, text := range texts {
		out[i] = text
		if s.translator == nil || text == "" {
			continue
		}
		translated, err := s.translator.Translate(ctx, text)
		if err != nil {
			if s.logger != nil {
				s.logger.Printf("번역 실패, 원문 유지: %v", err)
			}
			continue
		}
		if translated != "" {
			out[i] = translated
		}
	}
	return out
}
