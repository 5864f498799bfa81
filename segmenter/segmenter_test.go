package segmenter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/slabs/schema"
	"github.com/sevigo/slabs/segmenter"
)

// assertCovering checks the span contract: spans are ordered, adjacent, and
// together cover [0, len(text)).
func assertCovering(t *testing.T, text string, spans []schema.Span) {
	t.Helper()
	require.NotEmpty(t, spans)

	assert.Equal(t, 0, spans[0].Start)
	assert.Equal(t, len(text), spans[len(spans)-1].End)
	for i := 1; i < len(spans); i++ {
		assert.Equal(t, spans[i-1].End, spans[i].Start, "span %d not adjacent", i)
	}
	for i, span := range spans {
		assert.Less(t, span.Start, span.End, "span %d is empty", i)
	}
}

func TestPunktSegment(t *testing.T) {
	seg := segmenter.NewPunkt()
	text := "The quick brown fox jumps. It lands on the lazy dog. Both are fine."

	spans, err := seg.Segment(text)
	require.NoError(t, err)
	require.Len(t, spans, 3)
	assertCovering(t, text, spans)

	assert.Equal(t, "The quick brown fox jumps. ", text[spans[0].Start:spans[0].End])
	assert.Equal(t, "It lands on the lazy dog. ", text[spans[1].Start:spans[1].End])
	assert.Equal(t, "Both are fine.", text[spans[2].Start:spans[2].End])
}

func TestPunktSegment_Abbreviations(t *testing.T) {
	seg := segmenter.NewPunkt()
	text := "Dr. Smith works at Acme Inc. in Boston. She leads the research team."

	spans, err := seg.Segment(text)
	require.NoError(t, err)
	assertCovering(t, text, spans)
	// "Dr." and "Inc." must not end sentences.
	require.Len(t, spans, 2)
	assert.Equal(t, len("Dr. Smith works at Acme Inc. in Boston. "), spans[1].Start)
}

func TestPunktSegment_Empty(t *testing.T) {
	spans, err := segmenter.NewPunkt().Segment("")
	assert.NoError(t, err)
	assert.Nil(t, spans)
}

func TestPunktSegment_InvalidUTF8(t *testing.T) {
	_, err := segmenter.NewPunkt().Segment("hello \xff world.")
	assert.ErrorIs(t, err, segmenter.ErrSegmentation)
}

func TestPunktSegment_SingleSentence(t *testing.T) {
	text := "no terminal punctuation here"
	spans, err := segmenter.NewPunkt().Segment(text)
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, schema.Span{Start: 0, End: len(text)}, spans[0])
}

func TestSimpleSegment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "basic",
			text: "One fish. Two fish. Red fish.",
			want: []string{"One fish. ", "Two fish. ", "Red fish."},
		},
		{
			name: "abbreviation",
			text: "Dr. Smith arrived. He sat down.",
			want: []string{"Dr. Smith arrived. ", "He sat down."},
		},
		{
			name: "ellipsis run is swallowed",
			text: "Wait... something happened. Then it stopped.",
			want: []string{"Wait... ", "something happened. ", "Then it stopped."},
		},
		{
			name: "question and exclamation",
			text: "Really? Yes! Fine.",
			want: []string{"Really? ", "Yes! ", "Fine."},
		},
		{
			name: "initials",
			text: "Meet John D. Carpenter. He builds houses.",
			want: []string{"Meet John D. Carpenter. ", "He builds houses."},
		},
		{
			name: "newline separated",
			text: "First line.\nSecond line.",
			want: []string{"First line.\n", "Second line."},
		},
		{
			name: "trailing whitespace",
			text: "Only sentence.   ",
			want: []string{"Only sentence.   "},
		},
	}

	seg := segmenter.NewSimple()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans, err := seg.Segment(tt.text)
			require.NoError(t, err)
			assertCovering(t, tt.text, spans)

			got := make([]string, len(spans))
			for i, span := range spans {
				got[i] = tt.text[span.Start:span.End]
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSimpleSegment_InvalidUTF8(t *testing.T) {
	_, err := segmenter.NewSimple().Segment("bad \x80 byte.")
	assert.ErrorIs(t, err, segmenter.ErrSegmentation)
}

func TestSimpleSegment_Unicode(t *testing.T) {
	text := "Der Fluß fließt. Die Brücke hält."
	spans, err := segmenter.NewSimple().Segment(text)
	require.NoError(t, err)
	require.Len(t, spans, 2)
	assertCovering(t, text, spans)
	assert.Equal(t, "Die Brücke hält.", text[spans[1].Start:spans[1].End])
}
