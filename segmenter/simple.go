package segmenter

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sevigo/slabs/schema"
)

// defaultAbbreviations are common English abbreviations whose trailing
// period does not end a sentence.
var defaultAbbreviations = map[string]struct{}{
	"dr":   {},
	"mr":   {},
	"mrs":  {},
	"ms":   {},
	"prof": {},
	"sr":   {},
	"jr":   {},
	"st":   {},
	"vs":   {},
	"etc":  {},
	"inc":  {},
	"ltd":  {},
	"co":   {},
	"e.g":  {},
	"i.e":  {},
	"jan":  {},
	"feb":  {},
	"mar":  {},
	"apr":  {},
	"jun":  {},
	"jul":  {},
	"aug":  {},
	"sep":  {},
	"sept": {},
	"oct":  {},
	"nov":  {},
	"dec":  {},
	"no":   {},
	"vol":  {},
	"fig":  {},
	"u.s":  {},
	"d.c":  {},
}

// Simple is a dependency-free heuristic segmenter: a sentence ends at
// terminal punctuation (".", "!", "?") followed by whitespace, unless the
// preceding token is a known abbreviation or a single-letter initial.
// It is deterministic and cheap, which also makes it useful in tests.
type Simple struct {
	abbreviations map[string]struct{}
}

var _ Segmenter = (*Simple)(nil)

// NewSimple creates a heuristic segmenter with the default abbreviation set.
func NewSimple() *Simple {
	return &Simple{abbreviations: defaultAbbreviations}
}

// Segment splits text into sentence spans covering the whole input.
func (s *Simple) Segment(text string) ([]schema.Span, error) {
	if text == "" {
		return nil, nil
	}
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: input is not valid UTF-8", ErrSegmentation)
	}

	var starts []int
	for i := 0; i < len(text); i++ {
		if !isTerminal(text[i]) {
			continue
		}

		// Swallow punctuation runs such as "..." or "?!".
		end := i + 1
		for end < len(text) && isTerminal(text[end]) {
			end++
		}

		if end >= len(text) || !isSpaceByte(text[end]) {
			i = end - 1
			continue
		}

		if text[i] == '.' && s.isAbbreviation(text[:i]) {
			i = end - 1
			continue
		}

		// The next sentence starts at the first non-space character.
		next := end
		for next < len(text) {
			r, size := utf8.DecodeRuneInString(text[next:])
			if !unicode.IsSpace(r) {
				break
			}
			next += size
		}
		if next < len(text) {
			starts = append(starts, next)
		}
		i = end - 1
	}

	return spansFromStarts(len(text), starts), nil
}

// isAbbreviation reports whether the text ends in a token that should keep
// its trailing period inside the sentence.
func (s *Simple) isAbbreviation(before string) bool {
	fields := strings.Fields(before)
	if len(fields) == 0 {
		return false
	}

	token := strings.ToLower(strings.TrimLeft(fields[len(fields)-1], "(\"'"))
	if _, ok := s.abbreviations[token]; ok {
		return true
	}

	// Single-letter initials such as "D." in "D. C." or middle names.
	return len(token) == 1 && token[0] >= 'a' && token[0] <= 'z'
}

func isTerminal(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
