package chunker

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sevigo/slabs/schema"
)

// Pooler derives one embedding per slab from the token embeddings of the
// whole document. Embedding the full document first lets every token see
// the complete context; pooling afterwards keeps that context inside each
// slab vector, unlike embedding the slab texts in isolation.
type Pooler struct{}

// NewPooler creates a late-interaction pooler.
func NewPooler() *Pooler {
	return &Pooler{}
}

// Pool maps each slab's byte range onto the token sequence with a linear
// approximation (token i covers bytes [i*docLen/n, (i+1)*docLen/n)) and
// mean-pools the covered token embeddings. Use PoolWithOffsets when exact
// token byte offsets are available.
func (p *Pooler) Pool(tokens [][]float32, slabs []schema.Slab, docLen int) ([][]float32, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: no token embeddings", ErrEmbedding)
	}
	if docLen <= 0 {
		return nil, fmt.Errorf("%w: document length must be > 0, got %d", ErrEmbedding, docLen)
	}

	out := make([][]float32, len(slabs))
	for i, slab := range slabs {
		first := slab.Start * len(tokens) / docLen
		last := (slab.End*len(tokens) + docLen - 1) / docLen
		if last > len(tokens) {
			last = len(tokens)
		}
		if first >= last {
			first = last - 1
		}
		out[i] = meanPool(tokens[first:last])
	}
	return out, nil
}

// PoolWithOffsets mean-pools the embeddings of every token whose byte span
// overlaps the slab's range. Offsets must be parallel to tokens.
func (p *Pooler) PoolWithOffsets(tokens [][]float32, offsets []schema.Span, slabs []schema.Slab) ([][]float32, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: no token embeddings", ErrEmbedding)
	}
	if len(tokens) != len(offsets) {
		return nil, fmt.Errorf("%w: %d token embeddings but %d offsets",
			ErrEmbedding, len(tokens), len(offsets))
	}

	out := make([][]float32, len(slabs))
	for i, slab := range slabs {
		var covered [][]float32
		for j, span := range offsets {
			if span.Start < slab.End && span.End > slab.Start {
				covered = append(covered, tokens[j])
			}
		}
		if len(covered) == 0 {
			return nil, fmt.Errorf("%w: no tokens cover slab %d (%d..%d)",
				ErrEmbedding, slab.Index, slab.Start, slab.End)
		}
		out[i] = meanPool(covered)
	}
	return out, nil
}

// meanPool averages the vectors component-wise and L2-normalizes the result.
func meanPool(vectors [][]float32) []float32 {
	if len(vectors) == 0 {
		return nil
	}

	sum := make([]float64, len(vectors[0]))
	for _, v := range vectors {
		for i, x := range v {
			sum[i] += float64(x)
		}
	}

	var norm float64
	for i := range sum {
		sum[i] /= float64(len(vectors))
		norm += sum[i] * sum[i]
	}
	norm = math.Sqrt(norm)

	out := make([]float32, len(sum))
	for i, x := range sum {
		if norm > 0 {
			x /= norm
		}
		out[i] = float32(x)
	}
	return out
}

// TokenEmbedder yields one contextual embedding per token for a document.
// Models with long context windows implement this for late chunking.
type TokenEmbedder interface {
	EmbedTokens(ctx context.Context, text string) ([][]float32, error)
}

// Late wraps any chunking strategy and pools document-level token
// embeddings into one vector per slab.
type Late struct {
	base   Chunker
	tokens TokenEmbedder
	pooler *Pooler
}

// NewLate creates a late-chunking wrapper around base.
func NewLate(base Chunker, tokens TokenEmbedder) (*Late, error) {
	if base == nil {
		return nil, errors.New("chunker: base chunker is required")
	}
	if tokens == nil {
		return nil, ErrNilEmbedder
	}
	return &Late{base: base, tokens: tokens, pooler: NewPooler()}, nil
}

// Chunk delegates to the base strategy.
func (l *Late) Chunk(ctx context.Context, text string) ([]schema.Slab, error) {
	return l.base.Chunk(ctx, text)
}

// ChunkWithVectors chunks text and returns a pooled embedding per slab.
func (l *Late) ChunkWithVectors(ctx context.Context, text string) ([]schema.Slab, [][]float32, error) {
	slabs, err := l.base.Chunk(ctx, text)
	if err != nil {
		return nil, nil, err
	}
	if len(slabs) == 0 {
		return nil, nil, nil
	}

	tokens, err := l.tokens.EmbedTokens(ctx, text)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}

	vectors, err := l.pooler.Pool(tokens, slabs, len(text))
	if err != nil {
		return nil, nil, err
	}
	return slabs, vectors, nil
}
