// Package fake provides a deterministic in-memory embedder for testing
// chunking behavior without a model backend.
package fake

import (
	"context"
	"hash/fnv"
	"math"
	"sync"

	"github.com/sevigo/slabs/embeddings"
)

// Embedder is a deterministic vector source for tests. Texts with an entry
// in Vectors return that vector; any other text gets a stable unit vector
// derived from its hash, so identical input always yields identical output.
type Embedder struct {
	// Vectors maps exact text to the vector to return.
	Vectors map[string][]float32
	// Dim is the dimension of generated fallback vectors.
	Dim int
	// ErrToReturn, when set, is returned by every call.
	ErrToReturn error

	// Calls counts EmbedDocuments and EmbedQuery invocations. The wrapper
	// may call from concurrent batch goroutines, so the counter is guarded.
	Calls int

	mu sync.Mutex
}

var _ embeddings.Embedder = (*Embedder)(nil)

// New creates a fake embedder producing vectors of the given dimension.
func New(dim int) *Embedder {
	return &Embedder{
		Vectors: make(map[string][]float32),
		Dim:     dim,
	}
}

// EmbedDocuments returns one vector per text, in input order.
func (e *Embedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	e.Calls++
	e.mu.Unlock()
	if e.ErrToReturn != nil {
		return nil, e.ErrToReturn
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = e.vectorFor(text)
	}
	return vectors, nil
}

// EmbedQuery returns the vector for a single text.
func (e *Embedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	e.Calls++
	e.mu.Unlock()
	if e.ErrToReturn != nil {
		return nil, e.ErrToReturn
	}
	return e.vectorFor(text), nil
}

func (e *Embedder) vectorFor(text string) []float32 {
	if v, ok := e.Vectors[text]; ok {
		return v
	}

	dim := e.Dim
	if dim <= 0 {
		dim = 4
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	seed := h.Sum64()

	vector := make([]float32, dim)
	var norm float64
	for i := range vector {
		// xorshift keeps the sequence stable per text.
		seed ^= seed << 13
		seed ^= seed >> 7
		seed ^= seed << 17
		v := float64(seed%2000)/1000.0 - 1.0
		vector[i] = float32(v)
		norm += v * v
	}

	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vector {
			vector[i] = float32(float64(vector[i]) / norm)
		}
	}
	return vector
}
