package chunker

import (
	"context"
	"strings"

	"github.com/sevigo/slabs/schema"
)

// Separator hierarchies, coarsest to finest. The final empty string is the
// character level, which is always splittable and guarantees termination.
var (
	// ProseSeparators works well for general text.
	ProseSeparators = []string{"\n\n", "\n", ". ", " ", ""}
	// MarkdownSeparators keeps heading sections together when possible.
	MarkdownSeparators = []string{"\n## ", "\n### ", "\n\n", "\n", ". ", " ", ""}
	// CodeSeparators keeps Go declarations together when possible.
	CodeSeparators = []string{"\nfunc ", "\ntype ", "\n\n", "\n", " ", ""}
)

// Recursive descends a separator hierarchy: it splits on the coarsest
// separator, greedily re-merges adjacent parts that fit the target size,
// and recurses into any part that is still too large using the next finer
// level. At the character level it force-cuts at the target, so no slab
// exceeds the target size once recursion bottoms out.
//
// Separators stay attached to the part that precedes them, so the core
// slabs re-concatenate to the input exactly.
type Recursive struct {
	opts       options
	cap        Capacity
	separators []string
}

var _ Chunker = (*Recursive)(nil)

// NewRecursive creates a recursive chunker. Separators default to
// ProseSeparators; a trailing character level is appended if missing.
func NewRecursive(opts ...Option) (*Recursive, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	separators := o.separators
	if len(separators) == 0 {
		separators = ProseSeparators
	}
	if separators[len(separators)-1] != "" {
		separators = append(append([]string{}, separators...), "")
	}

	return &Recursive{
		opts:       o,
		cap:        o.capacity(),
		separators: separators,
	}, nil
}

// Chunk splits text along the separator hierarchy and applies overlap.
func (r *Recursive) Chunk(_ context.Context, text string) ([]schema.Slab, error) {
	if text == "" {
		return nil, nil
	}

	parts := r.split(text, 0)

	// The parts re-concatenate to the input, so offsets follow from a
	// cursor walk.
	slabs := make([]schema.Slab, 0, len(parts))
	cursor := 0
	for _, part := range parts {
		start := cursor
		end := start + len(part)
		cursor = end
		slabs = append(slabs, schema.NewSlab(part, start, end, len(slabs)))
	}

	return applyOverlap(text, slabs, r.opts.chunkOverlap, r.cap), nil
}

// split recursively partitions text using the separator at the given level.
// Every returned part fits the capacity once the character level is reached.
func (r *Recursive) split(text string, level int) []string {
	if len(text) <= r.cap.Max() {
		return []string{text}
	}
	if level >= len(r.separators) || r.separators[level] == "" {
		return r.forceSplit(text)
	}

	sep := r.separators[level]
	parts := splitKeepSeparator(text, sep)
	if len(parts) == 1 {
		// Separator never fires here; degrade to the next level.
		return r.split(text, level+1)
	}

	// Greedily merge adjacent parts up to the target size.
	merged := make([]string, 0, len(parts))
	current := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		switch {
		case current == "":
			current = part
		case len(current)+len(part) <= r.cap.Desired():
			current += part
		default:
			merged = append(merged, current)
			current = part
		}
	}
	if current != "" {
		merged = append(merged, current)
	}

	var out []string
	for _, m := range merged {
		if len(m) <= r.cap.Max() {
			out = append(out, m)
		} else {
			out = append(out, r.split(m, level+1)...)
		}
	}
	return out
}

// forceSplit hard-cuts at the target size, snapped to rune boundaries.
func (r *Recursive) forceSplit(text string) []string {
	var out []string
	for start := 0; start < len(text); {
		end := start + r.cap.Desired()
		if end >= len(text) {
			end = len(text)
		} else {
			end = floorRuneBoundary(text, end)
			if end <= start {
				// A single rune wider than the target; emit it whole.
				end = ceilRuneBoundary(text, start+1)
			}
		}
		out = append(out, text[start:end])
		start = end
	}
	return out
}

// splitKeepSeparator splits text on sep, keeping each separator attached to
// the part that precedes it so the parts re-concatenate to text.
func splitKeepSeparator(text, sep string) []string {
	var parts []string
	for {
		i := strings.Index(text, sep)
		if i < 0 {
			parts = append(parts, text)
			return parts
		}
		parts = append(parts, text[:i+len(sep)])
		text = text[i+len(sep):]
	}
}
