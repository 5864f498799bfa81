package chunker

import (
	"fmt"
	"log/slog"

	"github.com/sevigo/slabs/segmenter"
)

// Default configuration shared by all strategies.
const (
	defaultChunkSize    = 1000 // target chunk size in bytes
	defaultChunkOverlap = 200  // overlap between adjacent chunks in bytes
	defaultThreshold    = 0.5  // semantic similarity threshold
	defaultMinSentences = 2    // minimum sentences before a semantic split
)

// options holds configuration settings shared by the chunking strategies.
type options struct {
	chunkSize         int
	chunkOverlap      int
	maxChunkSize      int
	separators        []string
	threshold         float32
	minSentences      int
	sentencesPerChunk int
	segmenter         segmenter.Segmenter
	logger            *slog.Logger
}

// Option is a function type for configuring a chunking strategy.
type Option func(*options)

func defaultOptions() options {
	return options{
		chunkSize:    defaultChunkSize,
		chunkOverlap: defaultChunkOverlap,
		threshold:    defaultThreshold,
		minSentences: defaultMinSentences,
		logger:       slog.Default(),
	}
}

// validate checks the configured invariants eagerly, before any processing.
func (o options) validate() error {
	if o.chunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be > 0, got %d", ErrInvalidChunkSize, o.chunkSize)
	}
	if o.maxChunkSize != 0 && o.maxChunkSize < o.chunkSize {
		return fmt.Errorf("%w: max chunk size (%d) must be >= chunk size (%d)",
			ErrInvalidChunkSize, o.maxChunkSize, o.chunkSize)
	}
	if o.chunkOverlap < 0 {
		return fmt.Errorf("%w: overlap cannot be negative: %d", ErrInvalidOverlap, o.chunkOverlap)
	}
	if o.chunkOverlap >= o.chunkSize {
		return fmt.Errorf("%w: overlap (%d) must be less than chunk size (%d)",
			ErrInvalidOverlap, o.chunkOverlap, o.chunkSize)
	}
	if o.threshold < 0 || o.threshold > 1 {
		return fmt.Errorf("%w: threshold must be in [0, 1], got %g", ErrInvalidThreshold, o.threshold)
	}
	return nil
}

// capacity derives the size bounds from the configured sizes.
func (o options) capacity() Capacity {
	cap := NewCapacity(o.chunkSize)
	if o.maxChunkSize > o.chunkSize {
		cap, _ = cap.WithMax(o.maxChunkSize)
	}
	return cap
}

// resolveSegmenter returns the configured segmenter, defaulting to Punkt.
func (o options) resolveSegmenter() segmenter.Segmenter {
	if o.segmenter != nil {
		return o.segmenter
	}
	return segmenter.NewPunkt()
}

// WithChunkSize sets the target chunk size in bytes.
func WithChunkSize(size int) Option {
	return func(o *options) {
		o.chunkSize = size
	}
}

// WithChunkOverlap sets the overlap between adjacent chunks in bytes
// (whole sentences for the sentence strategy).
func WithChunkOverlap(overlap int) Option {
	return func(o *options) {
		o.chunkOverlap = overlap
	}
}

// WithMaxChunkSize sets a hard ceiling larger than the target size.
func WithMaxChunkSize(size int) Option {
	return func(o *options) {
		o.maxChunkSize = size
	}
}

// WithSeparators sets the separator hierarchy for the recursive strategy,
// coarsest first. An empty-string (character) level is appended if missing.
func WithSeparators(separators []string) Option {
	return func(o *options) {
		o.separators = separators
	}
}

// WithThreshold sets the similarity threshold for the semantic strategy.
// Adjacent sentences below the threshold start a new slab.
func WithThreshold(threshold float32) Option {
	return func(o *options) {
		o.threshold = threshold
	}
}

// WithMinSentences sets the minimum sentences per semantic slab, preventing
// over-fragmentation on noisy similarity sequences.
func WithMinSentences(minSentences int) Option {
	return func(o *options) {
		if minSentences > 0 {
			o.minSentences = minSentences
		}
	}
}

// WithSentencesPerChunk switches the sentence strategy from a byte budget
// to a fixed sentence count per slab.
func WithSentencesPerChunk(count int) Option {
	return func(o *options) {
		o.sentencesPerChunk = count
	}
}

// WithSegmenter overrides the sentence segmentation capability.
func WithSegmenter(seg segmenter.Segmenter) Option {
	return func(o *options) {
		if seg != nil {
			o.segmenter = seg
		}
	}
}

// WithLogger sets the logger for the strategy.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
