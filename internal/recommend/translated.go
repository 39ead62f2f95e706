package recommend

import (
	"context"

	"github.com/gomgom-ai/gomgom-services/app/internal/translate"
)

// TranslateCandidates returns new candidate values with the
// user-visible text fields replaced by their translations. Every
// field occupies its own slot of the batch, so each translates
// independently; the originals are untouched, which lets a caller
// toggle translation off by simply displaying the source set again.
func TranslateCandidates(ctx context.Context, pipeline *translate.Pipeline, candidates []Candidate) []Candidate {
	if len(candidates) == 0 {
		return nil
	}

	// Flatten: per candidate, store + description + category,
	// then the keyword list.
	texts := make([]string, 0, len(candidates)*4)
	for _, c := range candidates {
		texts = append(texts, c.Store, c.Description, c.Category)
		texts = append(texts, c.Keywords...)
	}

	translated := pipeline.Translate(ctx, texts)

	out := make([]Candidate, len(candidates))
	pos := 0
	for i, c := range candidates {
		next := c
		next.Store = translated[pos]
		next.Description = translated[pos+1]
		next.Category = translated[pos+2]
		pos += 3

		next.Keywords = make([]string, len(c.Keywords))
		copy(next.Keywords, translated[pos:pos+len(c.Keywords)])
		pos += len(c.Keywords)

		out[i] = next
	}
	return out
}
