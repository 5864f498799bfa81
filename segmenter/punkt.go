package segmenter

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/neurosnap/sentences"
	sentencesdata "github.com/neurosnap/sentences/data"

	"github.com/sevigo/slabs/schema"
)

var (
	// punktOnce ensures the English Punkt model is loaded once per process.
	punktOnce      sync.Once
	punktTokenizer *sentences.DefaultSentenceTokenizer
	punktErr       error
)

// loadPunkt initializes the shared English Punkt tokenizer from the
// embedded training data.
func loadPunkt() (*sentences.DefaultSentenceTokenizer, error) {
	punktOnce.Do(func() {
		b, err := sentencesdata.Asset("data/english.json")
		if err != nil {
			punktErr = fmt.Errorf("load english punkt data: %w", err)
			return
		}
		training, err := sentences.LoadTraining(b)
		if err != nil {
			punktErr = fmt.Errorf("parse english punkt data: %w", err)
			return
		}
		punktTokenizer = sentences.NewSentenceTokenizer(training)
	})
	if punktErr != nil {
		return nil, punktErr
	}
	return punktTokenizer, nil
}

// Punkt segments text using the Punkt unsupervised sentence boundary model
// trained on English. It handles abbreviations (Dr., Inc., e.g.), decimal
// numbers, and ellipses that trip up naive punctuation splitting.
type Punkt struct{}

var _ Segmenter = (*Punkt)(nil)

// NewPunkt creates a Punkt-based segmenter. The training data is loaded
// lazily on the first Segment call and shared across instances.
func NewPunkt() *Punkt {
	return &Punkt{}
}

// Segment splits text into sentence spans covering the whole input.
func (p *Punkt) Segment(text string) ([]schema.Span, error) {
	if text == "" {
		return nil, nil
	}
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: input is not valid UTF-8", ErrSegmentation)
	}

	tokenizer, err := loadPunkt()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSegmentation, err)
	}

	raw := tokenizer.Tokenize(text)

	// The tokenizer reports sentence text without positions; recover the
	// byte offset of each sentence by scanning forward from a cursor.
	starts := make([]int, 0, len(raw))
	cursor := 0
	for _, sentence := range raw {
		trimmed := strings.TrimSpace(sentence.Text)
		if trimmed == "" {
			continue
		}
		idx := strings.Index(text[cursor:], trimmed)
		if idx < 0 {
			return nil, fmt.Errorf("%w: sentence %q not found in source", ErrSegmentation, trimmed)
		}
		starts = append(starts, cursor+idx)
		cursor += idx + len(trimmed)
	}

	return spansFromStarts(len(text), starts), nil
}
