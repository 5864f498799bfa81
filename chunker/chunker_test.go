package chunker_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/slabs/chunker"
	"github.com/sevigo/slabs/schema"
)

func TestSplitDocuments(t *testing.T) {
	c, err := chunker.NewFixed(chunker.WithChunkSize(10), chunker.WithChunkOverlap(0))
	require.NoError(t, err)

	docs := []schema.Document{
		schema.NewDocument(strings.Repeat("a", 25), map[string]any{"source": "a.txt"}),
		schema.NewDocument(strings.Repeat("b", 5), map[string]any{"source": "b.txt"}),
	}

	out, err := chunker.SplitDocuments(context.Background(), c, docs)
	require.NoError(t, err)
	require.Len(t, out, 4)

	first := out[0]
	assert.Equal(t, strings.Repeat("a", 10), first.PageContent)
	assert.Equal(t, "a.txt", first.Metadata["source"])
	assert.Equal(t, 0, first.Metadata[chunker.MetadataStart])
	assert.Equal(t, 10, first.Metadata[chunker.MetadataEnd])
	assert.Equal(t, 0, first.Metadata[chunker.MetadataSlab])

	last := out[3]
	assert.Equal(t, "b.txt", last.Metadata["source"])
	assert.Equal(t, 0, last.Metadata[chunker.MetadataSlab])
}

func TestSplitDocuments_SourceMetadataUntouched(t *testing.T) {
	c, err := chunker.NewFixed(chunker.WithChunkSize(5), chunker.WithChunkOverlap(0))
	require.NoError(t, err)

	src := map[string]any{"source": "x"}
	_, err = chunker.SplitDocuments(context.Background(), c, []schema.Document{
		schema.NewDocument("0123456789", src),
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"source": "x"}, src)
}

type failingChunker struct{ err error }

func (f *failingChunker) Chunk(context.Context, string) ([]schema.Slab, error) {
	return nil, f.err
}

func TestSplitDocuments_ChunkerError(t *testing.T) {
	want := errors.New("boom")
	_, err := chunker.SplitDocuments(context.Background(), &failingChunker{err: want},
		[]schema.Document{schema.NewDocument("text", nil)})
	assert.ErrorIs(t, err, want)
}

func TestCapacity(t *testing.T) {
	c := chunker.NewCapacity(100)
	assert.Equal(t, 100, c.Desired())
	assert.Equal(t, 100, c.Max())
	assert.False(t, c.WouldOverflow(50, 50))
	assert.True(t, c.WouldOverflow(50, 51))

	wider, err := c.WithMax(150)
	require.NoError(t, err)
	assert.Equal(t, 100, wider.Desired())
	assert.Equal(t, 150, wider.Max())

	_, err = c.WithMax(99)
	assert.ErrorIs(t, err, chunker.ErrInvalidChunkSize)
}
