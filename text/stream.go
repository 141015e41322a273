package text

import (
	"fmt"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/robbert229/parsec/parsing"
)

// Parser recognizes a construct in text.
type Parser[R any] = parsing.Parser[rune, R]

type (
	Context = parsing.Context[rune]
	Stream  = parsing.SliceStream[rune]
)

// Position is the line and column of a rune, both starting at 1, and an
// optional source name used only in diagnostics.
type Position struct {
	Source       string
	Line, Column int
}

func StartPosition(source string) Position {
	return Position{Source: source, Line: 1, Column: 1}
}

// Update advances past consumed. Each newline bumps the line and restarts
// the column.
func (p Position) Update(consumed []rune) parsing.State[rune] {
	last := -1
	lines := 0
	for i, r := range consumed {
		if r == '\n' {
			lines++
			last = i
		}
	}
	if lines == 0 {
		p.Column += len(consumed)
		return p
	}
	p.Line += lines
	p.Column = len(consumed) - last
	return p
}

func (p Position) Format() string {
	if p.Source == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Source, p.Line, p.Column)
}

func (p Position) String() string {
	return p.Format()
}

// NewStream returns a rune stream over input.
func NewStream(input string) Stream {
	return parsing.NewSliceStream([]rune(input))
}

// NewContext starts a parse of input at 1:1.
func NewContext(input, source string) Context {
	return parsing.NewContext[rune](NewStream(input), StartPosition(source))
}

// Returns the transformer for the requested normalization, or nil.
// Transformers keep state, so every parse builds its own.
func normalizer(normalize, foldMarks bool) transform.Transformer {
	switch {
	case foldMarks:
		// Decompose, drop nonspacing marks (accents), recompose.
		return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	case normalize:
		return norm.NFC
	}
	return nil
}

func prepare(input string, normalize, foldMarks bool) (string, error) {
	t := normalizer(normalize, foldMarks)
	if t == nil {
		return input, nil
	}
	out, _, err := transform.String(t, input)
	return out, err
}
