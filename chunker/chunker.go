// Package chunker splits text into contiguous, position-tracked slabs sized
// for retrieval pipelines. Four strategies share one span and overlap model:
// fixed-width, sentence-aware, recursive separator-hierarchy, and
// embedding-driven semantic grouping, plus a markdown-structural variant.
//
// All strategies are pure functions over immutable input and are safe for
// concurrent use across documents.
package chunker

import (
	"context"
	"maps"

	"github.com/sevigo/slabs/schema"
)

// Chunker is a text chunking strategy. Implementations return slabs whose
// Text always equals the input slice text[Start:End], in document order.
// Empty input yields a nil slab sequence, not an error.
type Chunker interface {
	Chunk(ctx context.Context, text string) ([]schema.Slab, error)
}

// Metadata keys attached by SplitDocuments.
const (
	MetadataStart = "start"
	MetadataEnd   = "end"
	MetadataSlab  = "slab"
)

// SplitDocuments runs a chunker over each document and returns one document
// per slab, carrying the source metadata plus the slab's offsets.
func SplitDocuments(ctx context.Context, c Chunker, docs []schema.Document) ([]schema.Document, error) {
	var out []schema.Document
	for _, doc := range docs {
		slabs, err := c.Chunk(ctx, doc.PageContent)
		if err != nil {
			return nil, err
		}
		for _, slab := range slabs {
			metadata := make(map[string]any, len(doc.Metadata)+3)
			maps.Copy(metadata, doc.Metadata)
			metadata[MetadataStart] = slab.Start
			metadata[MetadataEnd] = slab.End
			metadata[MetadataSlab] = slab.Index

			out = append(out, schema.NewDocument(slab.Text, metadata))
		}
	}
	return out, nil
}
