package chunker_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/slabs/chunker"
)

const markdownDoc = `# Title

Intro paragraph with some context.

## Section One

Body of the first section.

## Section Two

Body of the second section.
`

func TestMarkdownChunk_Headings(t *testing.T) {
	c, err := chunker.NewMarkdown(chunker.WithChunkOverlap(0))
	require.NoError(t, err)

	slabs, err := c.Chunk(context.Background(), markdownDoc)
	require.NoError(t, err)
	require.Len(t, slabs, 3)
	assertSlabInvariants(t, markdownDoc, slabs)

	assert.True(t, strings.HasPrefix(slabs[0].Text, "# Title"))
	assert.True(t, strings.HasPrefix(slabs[1].Text, "## Section One"))
	assert.True(t, strings.HasPrefix(slabs[2].Text, "## Section Two"))
	assert.Equal(t, markdownDoc, reconstruct(slabs))
}

func TestMarkdownChunk_OversizedSection(t *testing.T) {
	doc := "# Big\n\n" + strings.Repeat("A sentence of filler prose for the body. ", 40) + "\n\n## Small\n\nTail."

	c, err := chunker.NewMarkdown(chunker.WithChunkSize(300), chunker.WithChunkOverlap(0))
	require.NoError(t, err)

	slabs, err := c.Chunk(context.Background(), doc)
	require.NoError(t, err)
	require.Greater(t, len(slabs), 2)
	assertSlabInvariants(t, doc, slabs)

	for i, slab := range slabs {
		assert.LessOrEqual(t, slab.Len(), 300, "slab %d exceeds ceiling", i)
	}
	assert.Equal(t, doc, reconstruct(slabs))

	// The small trailing section stays intact.
	last := slabs[len(slabs)-1]
	assert.True(t, strings.HasPrefix(last.Text, "## Small"))
}

func TestMarkdownChunk_NoHeadings(t *testing.T) {
	doc := "Plain prose without any headings at all. Just sentences."

	c, err := chunker.NewMarkdown(chunker.WithChunkOverlap(0))
	require.NoError(t, err)

	slabs, err := c.Chunk(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, slabs, 1)
	assert.Equal(t, doc, slabs[0].Text)
}

func TestMarkdownChunk_Overlap(t *testing.T) {
	c, err := chunker.NewMarkdown(
		chunker.WithChunkSize(200),
		chunker.WithChunkOverlap(40),
		chunker.WithMaxChunkSize(260),
	)
	require.NoError(t, err)

	slabs, err := c.Chunk(context.Background(), markdownDoc)
	require.NoError(t, err)
	require.Greater(t, len(slabs), 1)
	assertSlabInvariants(t, markdownDoc, slabs)

	for i := 1; i < len(slabs); i++ {
		carried := slabs[i-1].End - slabs[i].Start
		assert.GreaterOrEqual(t, carried, 0)
		assert.LessOrEqual(t, carried, 40, "slab %d overlap", i)
	}
	assert.Equal(t, markdownDoc, reconstruct(slabs))
}

func TestMarkdownChunk_Empty(t *testing.T) {
	c, err := chunker.NewMarkdown()
	require.NoError(t, err)

	slabs, err := c.Chunk(context.Background(), "")
	assert.NoError(t, err)
	assert.Nil(t, slabs)
}
