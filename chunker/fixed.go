package chunker

import (
	"context"

	"github.com/sevigo/slabs/schema"
)

// Fixed splits the document into slabs of exactly the target size, ignoring
// word and sentence structure entirely. Slab i always starts at
// i*(chunkSize-overlap), so the output is fully deterministic; offsets are
// snapped to UTF-8 rune boundaries so no slab splits a multi-byte sequence.
//
// Use it for homogeneous content (logs, code) or baseline comparisons.
type Fixed struct {
	opts options
}

var _ Chunker = (*Fixed)(nil)

// NewFixed creates a fixed-size chunker.
func NewFixed(opts ...Option) (*Fixed, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	return &Fixed{opts: o}, nil
}

// Chunk splits text into fixed-size slabs. The final slab may be shorter.
func (f *Fixed) Chunk(_ context.Context, text string) ([]schema.Slab, error) {
	if text == "" {
		return nil, nil
	}

	size := f.opts.chunkSize
	step := size - f.opts.chunkOverlap

	// Both edges snap downwards, so with zero overlap slab i ends exactly
	// where slab i+1 starts and the slabs reconstruct the document.
	slabs := make([]schema.Slab, 0, (len(text)+step-1)/step)
	lastEnd := 0
	for i := 0; i*step < len(text); i++ {
		start := floorRuneBoundary(text, i*step)

		end := start + size
		if end >= len(text) {
			end = len(text)
		} else {
			end = floorRuneBoundary(text, end)
		}
		if end <= start || end <= lastEnd {
			continue
		}
		lastEnd = end

		slabs = append(slabs, schema.NewSlab(text[start:end], start, end, len(slabs)))
	}

	return slabs, nil
}
