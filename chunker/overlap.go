package chunker

import (
	"unicode/utf8"

	"github.com/sevigo/slabs/schema"
)

// applyOverlap is the shared postprocessing step: it extends every slab
// except the first backwards by up to overlap bytes taken from the tail of
// the previous slab's core region. The extension never crosses offset 0,
// never reaches before the previous slab's own start, never splits a UTF-8
// sequence, and never grows a slab beyond the hard max capacity. Core
// regions are untouched, so stripping the overlap prefixes reconstructs the
// original ordering exactly.
func applyOverlap(text string, slabs []schema.Slab, overlap int, cap Capacity) []schema.Slab {
	if overlap <= 0 || len(slabs) < 2 {
		return slabs
	}

	out := make([]schema.Slab, len(slabs))
	out[0] = slabs[0]

	for i := 1; i < len(slabs); i++ {
		core := slabs[i]

		start := core.Start - overlap
		if prev := slabs[i-1].Start; start < prev {
			start = prev
		}
		if budget := core.End - cap.Max(); start < budget {
			start = budget
		}
		// Never cut into the core region itself, even when it is oversized.
		if start > core.Start {
			start = core.Start
		}
		start = floorRuneBoundary(text, start)

		out[i] = schema.Slab{
			Text:  text[start:core.End],
			Start: start,
			End:   core.End,
			Index: core.Index,
		}
	}

	return out
}

// floorRuneBoundary moves i backwards to the nearest UTF-8 rune start.
func floorRuneBoundary(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// ceilRuneBoundary moves i forwards to the nearest UTF-8 rune start.
func ceilRuneBoundary(s string, i int) int {
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}
