// Package embedder turns text into dense vectors for ingestion and
// pipeline search. The actual embedding model stays pluggable via
// EmbedFunc; Batched adds batching and rate limiting around it.
package embedder

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/hupe1980/mochow/model"
)

// Embedder converts text into vectors.
type Embedder interface {
	// EmbedChunks computes and assigns the embedding of each chunk.
	EmbedChunks(ctx context.Context, chunks []*model.DocumentChunk) error

	// EmbedTexts returns one vector per input text, in order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbedFunc is the raw embedding call behind Batched, typically a
// remote model API returning one vector per text.
type EmbedFunc func(ctx context.Context, texts []string) ([][]float32, error)

// Defaults of Batched.
const (
	DefaultBatchSize     = 10
	DefaultRatePerSecond = 1
)

// BatchedOptions configures a Batched embedder.
type BatchedOptions struct {
	// BatchSize is the number of texts per embedding call.
	BatchSize int
	// RatePerSecond throttles embedding calls. Zero or negative
	// disables throttling.
	RatePerSecond float64
}

// Batched wraps an EmbedFunc with batching and rate limiting. Remote
// embedding APIs usually cap both the batch size and the request rate;
// Batched keeps callers within those caps.
type Batched struct {
	embed     EmbedFunc
	batchSize int
	limiter   *rate.Limiter
}

// NewBatched creates a batched embedder around the given embedding call.
func NewBatched(embed EmbedFunc, optFns ...func(*BatchedOptions)) *Batched {
	opts := BatchedOptions{
		BatchSize:     DefaultBatchSize,
		RatePerSecond: DefaultRatePerSecond,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}

	var limiter *rate.Limiter
	if opts.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), 1)
	}
	return &Batched{
		embed:     embed,
		batchSize: opts.BatchSize,
		limiter:   limiter,
	}
}

// EmbedTexts implements Embedder.
func (b *Batched) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += b.batchSize {
		end := min(start+b.batchSize, len(texts))

		if b.limiter != nil {
			if err := b.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		batch, err := b.embed(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		if len(batch) != end-start {
			return nil, fmt.Errorf("embedder: got %d vectors for %d texts", len(batch), end-start)
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

// EmbedChunks implements Embedder.
func (b *Batched) EmbedChunks(ctx context.Context, chunks []*model.DocumentChunk) error {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}
	vectors, err := b.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}
	for i, chunk := range chunks {
		chunk.Embedding = vectors[i]
	}
	return nil
}
