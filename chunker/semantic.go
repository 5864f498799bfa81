package chunker

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/sevigo/slabs/embeddings"
	"github.com/sevigo/slabs/schema"
	"github.com/sevigo/slabs/segmenter"
)

// Semantic places slab boundaries where the meaning of the text shifts. The
// document is segmented into sentences, every sentence is embedded in a
// single batched call, and adjacent sentences whose cosine similarity drops
// below the threshold start a new slab. A slab also closes when adding the
// next sentence would push it past the hard size ceiling, regardless of
// similarity.
//
// An embedder failure fails the whole Chunk call; there is no silent
// degradation to a coarser strategy.
type Semantic struct {
	opts     options
	cap      Capacity
	embedder embeddings.Embedder
	seg      segmenter.Segmenter
}

var _ Chunker = (*Semantic)(nil)

// NewSemantic creates a semantic chunker backed by the given embedder.
func NewSemantic(embedder embeddings.Embedder, opts ...Option) (*Semantic, error) {
	if embedder == nil {
		return nil, ErrNilEmbedder
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	return &Semantic{
		opts:     o,
		cap:      o.capacity(),
		embedder: embedder,
		seg:      o.resolveSegmenter(),
	}, nil
}

// Chunk segments text into sentences, embeds them, and groups runs of
// semantically similar sentences into slabs.
func (s *Semantic) Chunk(ctx context.Context, text string) ([]schema.Slab, error) {
	if text == "" {
		return nil, nil
	}

	spans, err := s.seg.Segment(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSegmentation, err)
	}
	if len(spans) == 0 {
		return nil, nil
	}

	texts := make([]string, len(spans))
	for i, span := range spans {
		texts[i] = strings.TrimSpace(text[span.Start:span.End])
	}

	vectors, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}
	if len(vectors) != len(spans) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d sentences",
			ErrEmbedding, len(vectors), len(spans))
	}

	s.opts.logger.DebugContext(ctx, "embedded sentences for semantic chunking",
		"sentences", len(spans))

	var slabs []schema.Slab
	first := 0
	for i := 1; i < len(spans); i++ {
		drop := cosineSimilarity(vectors[i-1], vectors[i]) < s.opts.threshold
		tooFew := i-first < s.opts.minSentences
		overflow := spans[i].End-spans[first].Start > s.cap.Max()

		// The size ceiling always wins; a similarity drop only splits once
		// the slab holds enough sentences.
		if overflow || (drop && !tooFew) {
			start := spans[first].Start
			end := spans[i-1].End
			slabs = append(slabs, schema.NewSlab(text[start:end], start, end, len(slabs)))
			first = i
		}
	}
	start := spans[first].Start
	end := spans[len(spans)-1].End
	slabs = append(slabs, schema.NewSlab(text[start:end], start, end, len(slabs)))

	return applyOverlap(text, slabs, s.opts.chunkOverlap, s.cap), nil
}

// cosineSimilarity returns the cosine of the angle between a and b, or 0
// when either vector has zero norm or the lengths differ.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
