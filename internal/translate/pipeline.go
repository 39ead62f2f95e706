package translate

import (
	"context"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultChunkSize is how many texts travel in one translation call.
const DefaultChunkSize = 10

// Endpoint performs one chunk translation. The returned slice must be
// the same length as the input; an error marks the whole chunk failed.
type Endpoint interface {
	TranslateChunk(ctx context.Context, texts []string) ([]string, error)
}

// EndpointFunc adapts a function to the Endpoint interface.
type EndpointFunc func(ctx context.Context, texts []string) ([]string, error)

func (f EndpointFunc) TranslateChunk(ctx context.Context, texts []string) ([]string, error) {
	return f(ctx, texts)
}

// Pipeline batch-translates arbitrarily many texts through a
// rate-bounded endpoint while preserving positional correspondence.
// Pipeline は청크 단위 병렬 번역을 수행하고 입력 순서를 보존한다.
type Pipeline struct {
	endpoint  Endpoint
	chunkSize int
	logger    *log.Logger
}

// NewPipeline builds a pipeline with the default chunk size.
func NewPipeline(endpoint Endpoint, logger *log.Logger) *Pipeline {
	return &Pipeline{endpoint: endpoint, chunkSize: DefaultChunkSize, logger: logger}
}

// WithChunkSize overrides the transport chunk size.
func (p *Pipeline) WithChunkSize(size int) *Pipeline {
	if size > 0 {
		p.chunkSize = size
	}
	return p
}

// Translate returns exactly len(texts) strings in input order.
//
// Blank entries are filtered before transport but their positions are
// tracked and spliced back, so the output never shrinks or shifts.
// Chunks are dispatched concurrently and joined; one chunk failing
// degrades that chunk to its source strings without cancelling the
// others. A total failure degrades to the input unchanged.
func (p *Pipeline) Translate(ctx context.Context, texts []string) []string {
	out := make([]string, len(texts))
	copy(out, texts)

	// 공백 입력은 전송 대상에서 제외하되 원래 인덱스를 기억해 둔다.
	indices := make([]int, 0, len(texts))
	pending := make([]string, 0, len(texts))
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		indices = append(indices, i)
		pending = append(pending, text)
	}
	if len(pending) == 0 {
		return out
	}

	chunks := make([][]string, 0, (len(pending)+p.chunkSize-1)/p.chunkSize)
	for start := 0; start < len(pending); start += p.chunkSize {
		end := start + p.chunkSize
		if end > len(pending) {
			end = len(pending)
		}
		chunks = append(chunks, pending[start:end])
	}

	if p.logger != nil {
		p.logger.Printf("번역 요청: %d개 텍스트를 %d개 청크로 분할", len(pending), len(chunks))
	}

	results := make([][]string, len(chunks))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		group.Go(func() error {
			translated, err := p.endpoint.TranslateChunk(groupCtx, chunk)
			if err != nil || len(translated) != len(chunk) {
				if p.logger != nil {
					p.logger.Printf("청크 %d/%d 번역 실패, 원문으로 대체: %v", i+1, len(chunks), err)
				}
				translated = chunk
			}
			results[i] = translated
			// Partial degradation is preferred over total failure, so a
			// chunk error never propagates into the group.
			return nil
		})
	}
	// Workers only ever return nil; Wait is the all-complete join.
	_ = group.Wait()

	pos := 0
	for _, chunk := range results {
		for _, text := range chunk {
			out[indices[pos]] = text
			pos++
		}
	}
	return out
}
