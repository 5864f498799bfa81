// Package segmenter provides sentence boundary detection for the chunking
// engine. Implementations return spans that are ordered, non-overlapping,
// and together cover the whole input, so chunkers can slice the original
// document without losing offsets.
package segmenter

import (
	"errors"

	"github.com/sevigo/slabs/schema"
)

var ErrSegmentation = errors.New("segmenter: segmentation failed")

// Segmenter splits text into an ordered sequence of sentence spans.
//
// The first span starts at offset 0 and the last span ends at len(text).
// Inter-sentence whitespace is attached to the span of the preceding
// sentence, so each span after the first begins exactly at a sentence start.
type Segmenter interface {
	Segment(text string) ([]schema.Span, error)
}

// spansFromStarts converts ascending sentence start offsets into covering
// spans. Offset 0 is implied as the first start; duplicates are dropped.
func spansFromStarts(textLen int, starts []int) []schema.Span {
	if textLen == 0 {
		return nil
	}

	spans := make([]schema.Span, 0, len(starts)+1)
	prev := 0
	for _, start := range starts {
		if start <= prev || start >= textLen {
			continue
		}
		spans = append(spans, schema.Span{Start: prev, End: start})
		prev = start
	}
	spans = append(spans, schema.Span{Start: prev, End: textLen})

	return spans
}
