// Package embeddings defines the embedding capability consumed by the
// semantic chunker, plus a wrapper that adds preprocessing, batching, and
// bounded concurrency on top of any backend client.
package embeddings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Embedder turns text into fixed-length numeric vectors. EmbedDocuments
// must return one vector per input text, in input order, and must be
// deterministic for identical input within a single call sequence.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

var ErrEmptyText = errors.New("embeddings: text cannot be empty")

// EmbedderImpl wraps a backend client with preprocessing and batching.
type EmbedderImpl struct {
	client Embedder
	opts   options
}

// NewEmbedder wraps a backend client. Batches are embedded concurrently
// (bounded), but results are always returned in input order.
func NewEmbedder(client Embedder, opts ...Option) (Embedder, error) {
	o := options{
		StripNewLines: true,
		BatchSize:     32,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.BatchSize <= 0 {
		o.BatchSize = 32
	}

	if _, ok := client.(*EmbedderImpl); ok {
		return nil, errors.New("embeddings: cannot wrap an already-wrapped EmbedderImpl")
	}

	return &EmbedderImpl{
		client: client,
		opts:   o,
	}, nil
}

func (e *EmbedderImpl) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	return e.client.EmbedQuery(ctx, e.preprocessText(text))
}

func (e *EmbedderImpl) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	processed := make([]string, len(texts))
	for i, text := range texts {
		processed[i] = e.preprocessText(text)
	}

	batches := batchTexts(processed, e.opts.BatchSize)
	batchResults := make([][][]float32, len(batches))
	errCh := make(chan error, len(batches))

	const maxConcurrent = 8
	semaphore := make(chan struct{}, maxConcurrent)

	var wg sync.WaitGroup
	for i, batch := range batches {
		wg.Add(1)
		go func(i int, batch []string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if ctx.Err() != nil {
				return
			}

			vectors, err := e.client.EmbedDocuments(ctx, batch)
			if err != nil {
				errCh <- fmt.Errorf("embeddings: batch %d: %w", i, err)
				return
			}
			batchResults[i] = vectors
		}(i, batch)
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	all := make([][]float32, 0, len(texts))
	for _, batch := range batchResults {
		all = append(all, batch...)
	}

	return all, nil
}

func (e *EmbedderImpl) preprocessText(text string) string {
	if e.opts.StripNewLines {
		return strings.ReplaceAll(text, "\n", " ")
	}
	return text
}

func batchTexts(texts []string, batchSize int) [][]string {
	if batchSize <= 0 {
		return [][]string{texts}
	}

	numBatches := (len(texts) + batchSize - 1) / batchSize
	batches := make([][]string, 0, numBatches)

	for i := 0; i < len(texts); i += batchSize {
		end := i + batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batches = append(batches, texts[i:end])
	}

	return batches
}
