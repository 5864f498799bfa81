package chunker

import (
	"context"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"

	"github.com/sevigo/slabs/schema"
)

// Markdown cuts the document at heading boundaries so every slab covers a
// coherent section. Sections larger than the size ceiling are subdivided
// with the recursive strategy using a markdown-aware separator hierarchy.
type Markdown struct {
	opts options
	cap  Capacity
	md   goldmark.Markdown
	sub  *Recursive
}

var _ Chunker = (*Markdown)(nil)

// NewMarkdown creates a heading-aware markdown chunker.
func NewMarkdown(opts ...Option) (*Markdown, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	subOpts := make([]Option, 0, len(opts)+2)
	subOpts = append(subOpts, opts...)
	if len(o.separators) == 0 {
		subOpts = append(subOpts, WithSeparators(MarkdownSeparators))
	}
	// Overlap is applied once, over the final slab sequence.
	subOpts = append(subOpts, WithChunkOverlap(0))

	sub, err := NewRecursive(subOpts...)
	if err != nil {
		return nil, err
	}

	return &Markdown{
		opts: o,
		cap:  o.capacity(),
		md:   goldmark.New(),
		sub:  sub,
	}, nil
}

// Chunk splits markdown text into heading-delimited sections.
func (m *Markdown) Chunk(ctx context.Context, text string) ([]schema.Slab, error) {
	if text == "" {
		return nil, nil
	}

	cuts := m.headingCuts([]byte(text))

	var slabs []schema.Slab
	prev := 0
	for _, cut := range append(cuts, len(text)) {
		if cut <= prev {
			continue
		}
		slabs = append(slabs, m.sectionSlabs(text, prev, cut, len(slabs))...)
		prev = cut
	}

	m.opts.logger.DebugContext(ctx, "chunked markdown document",
		"sections", len(cuts)+1, "slabs", len(slabs))

	return applyOverlap(text, slabs, m.opts.chunkOverlap, m.cap), nil
}

// headingCuts parses the document and returns the byte offset of the line
// start of every heading, in document order.
func (m *Markdown) headingCuts(source []byte) []int {
	doc := m.md.Parser().Parse(gtext.NewReader(source))

	var cuts []int
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Lines().Len() == 0 {
			return ast.WalkContinue, nil
		}

		// The segment starts after the "#" markers; back up to the line
		// start so the markers stay inside the section.
		start := heading.Lines().At(0).Start
		for start > 0 && source[start-1] != '\n' {
			start--
		}
		cuts = append(cuts, start)

		return ast.WalkSkipChildren, nil
	})

	return cuts
}

// sectionSlabs turns one heading-delimited section into slabs, subdividing
// it when it exceeds the size ceiling.
func (m *Markdown) sectionSlabs(text string, start, end, index int) []schema.Slab {
	section := text[start:end]
	if len(section) <= m.cap.Max() {
		return []schema.Slab{schema.NewSlab(section, start, end, index)}
	}

	parts := m.sub.split(section, 0)

	slabs := make([]schema.Slab, 0, len(parts))
	cursor := start
	for _, part := range parts {
		s := cursor
		e := s + len(part)
		cursor = e
		slabs = append(slabs, schema.NewSlab(part, s, e, index+len(slabs)))
	}
	return slabs
}
