package schema

import "fmt"

// Slab is a chunk of text with its position in the original document.
//
// Start and End are byte offsets into the source text, so the original
// position of every chunk can be recovered: Text always equals
// document[Start:End] byte for byte. Index is the zero-based position of
// the slab in the output sequence.
type Slab struct {
	Text  string
	Start int
	End   int
	Index int
}

// NewSlab creates a new slab.
func NewSlab(text string, start, end, index int) Slab {
	return Slab{
		Text:  text,
		Start: start,
		End:   end,
		Index: index,
	}
}

// Len returns the length of the slab text in bytes.
func (s Slab) Len() int {
	return len(s.Text)
}

// IsEmpty reports whether the slab contains no text.
func (s Slab) IsEmpty() bool {
	return len(s.Text) == 0
}

func (s Slab) String() string {
	return fmt.Sprintf("Slab{index: %d, span: %d..%d, len: %d}", s.Index, s.Start, s.End, s.Len())
}

// Span is a half-open byte range [Start, End) within a document.
type Span struct {
	Start int
	End   int
}

// Len returns the span length in bytes.
func (sp Span) Len() int {
	return sp.End - sp.Start
}

// Document is a piece of text with associated metadata, the unit that
// chunked output feeds into retrieval pipelines.
type Document struct {
	PageContent string
	Metadata    map[string]any
}

func (d Document) String() string {
	return d.PageContent
}

// NewDocument creates a document, allocating an empty metadata map if none
// is provided.
func NewDocument(content string, metadata map[string]any) Document {
	if metadata == nil {
		metadata = make(map[string]any)
	}
	return Document{
		PageContent: content,
		Metadata:    metadata,
	}
}
