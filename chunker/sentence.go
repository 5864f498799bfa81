package chunker

import (
	"context"
	"fmt"

	"github.com/sevigo/slabs/schema"
	"github.com/sevigo/slabs/segmenter"
)

// Sentence groups consecutive sentences into slabs. Sentences are never
// split: a slab closes once adding the next sentence would exceed the
// target size, and a single sentence longer than the target becomes its own
// oversized slab. Overlap is measured in whole sentences: trailing
// sentences of the previous slab whose combined length fits the overlap
// budget are carried forward.
type Sentence struct {
	opts options
	seg  segmenter.Segmenter
}

var _ Chunker = (*Sentence)(nil)

// NewSentence creates a sentence-aware chunker. The segmenter defaults to
// the Punkt model; use WithSentencesPerChunk to group by count instead of
// a byte budget.
func NewSentence(opts ...Option) (*Sentence, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	return &Sentence{
		opts: o,
		seg:  o.resolveSegmenter(),
	}, nil
}

// Chunk splits text on sentence boundaries and groups the sentences.
func (s *Sentence) Chunk(_ context.Context, text string) ([]schema.Slab, error) {
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

	var groups [][2]int // [first, last] span index per slab
	if s.opts.sentencesPerChunk > 0 {
		groups = groupByCount(spans, s.opts.sentencesPerChunk)
	} else {
		groups = groupByBudget(spans, s.opts.chunkSize)
	}

	slabs := make([]schema.Slab, 0, len(groups))
	for gi, g := range groups {
		start := spans[g[0]].Start

		// Carry whole trailing sentences of the previous group forward.
		if gi > 0 && s.opts.chunkOverlap > 0 {
			budget := s.opts.chunkOverlap
			prevFirst := groups[gi-1][0]
			for j := g[0] - 1; j >= prevFirst && spans[j].Len() <= budget; j-- {
				budget -= spans[j].Len()
				start = spans[j].Start
			}
		}

		end := spans[g[1]].End
		slabs = append(slabs, schema.NewSlab(text[start:end], start, end, gi))
	}

	return slabs, nil
}

// groupByBudget closes a group once adding the next sentence would exceed
// the byte budget. A single oversized sentence forms a group of one.
func groupByBudget(spans []schema.Span, budget int) [][2]int {
	var groups [][2]int
	first := 0
	size := 0

	for i, span := range spans {
		if i > first && size+span.Len() > budget {
			groups = append(groups, [2]int{first, i - 1})
			first = i
			size = 0
		}
		size += span.Len()
	}
	groups = append(groups, [2]int{first, len(spans) - 1})

	return groups
}

// groupByCount groups a fixed number of sentences per slab.
func groupByCount(spans []schema.Span, count int) [][2]int {
	var groups [][2]int
	for first := 0; first < len(spans); first += count {
		last := first + count - 1
		if last >= len(spans) {
			last = len(spans) - 1
		}
		groups = append(groups, [2]int{first, last})
	}
	return groups
}
