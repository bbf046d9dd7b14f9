// Package embedding turns chunk and query text into fixed-length vectors
// through a pluggable provider.
package embedding

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cloo-solutions/tutorai/internal/domain"
)

const (
	DefaultBatchSize   = 16
	DefaultConcurrency = 4
	DefaultTimeout     = 30 * time.Second
)

// Provider computes one vector per input text, in input order.
type Provider interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Options tunes how a Batcher splits and dispatches provider calls.
type Options struct {
	BatchSize   int
	Concurrency int
	Timeout     time.Duration
}

// Batcher splits input into provider-sized batches and runs them concurrently.
// Every vector it returns has the same length.
type Batcher struct {
	provider    Provider
	batchSize   int
	concurrency int
	timeout     time.Duration
}

// NewBatcher creates a Batcher, filling zero options with defaults.
func NewBatcher(provider Provider, opts Options) *Batcher {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Batcher{
		provider:    provider,
		batchSize:   opts.BatchSize,
		concurrency: opts.Concurrency,
		timeout:     opts.Timeout,
	}
}

// EmbedBatch returns one vector per text. Provider failures surface as
// model-unavailable errors.
func (b *Batcher) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	vectors := make([][]float32, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for start := 0; start < len(texts); start += b.batchSize {
		end := min(start+b.batchSize, len(texts))
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, b.timeout)
			defer cancel()

			out, err := b.provider.EmbedTexts(callCtx, texts[start:end])
			if err != nil {
				return domain.ModelUnavailable("embedding", err)
			}
			if len(out) != end-start {
				return domain.ModelUnavailable("embedding",
					fmt.Errorf("provider returned %d vectors for %d texts", len(out), end-start))
			}
			copy(vectors[start:end], out)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dim := len(vectors[0])
	if dim == 0 {
		return nil, domain.ModelUnavailable("embedding", fmt.Errorf("provider returned an empty vector"))
	}
	for _, v := range vectors[1:] {
		if len(v) != dim {
			return nil, domain.DimensionMismatch(dim, len(v))
		}
	}
	return vectors, nil
}

// EmbedOne embeds a single text.
func (b *Batcher) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vectors, err := b.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}
