package text

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/robbert229/parsec/parsing"
)

var item = parsing.Item[rune]()

// Satisfy reads one rune accepted by pred.
func Satisfy(pred func(rune) bool) *Parser[rune] {
	return item.WhereShow(pred, parsing.ShowRune)
}

func Char(c rune) *Parser[rune] {
	return Satisfy(func(r rune) bool { return r == c }).Named(fmt.Sprintf("%q", c))
}

// OneOf reads any rune of chars.
func OneOf(chars string) *Parser[rune] {
	return Satisfy(func(r rune) bool { return strings.ContainsRune(chars, r) })
}

// NoneOf reads any rune not in chars.
func NoneOf(chars string) *Parser[rune] {
	return Satisfy(func(r rune) bool { return !strings.ContainsRune(chars, r) })
}

// Literal reads s exactly.
func Literal(s string) *Parser[string] {
	cs := make([]*Parser[rune], 0, len(s))
	for _, r := range s {
		cs = append(cs, Char(r))
	}
	return parsing.Map(parsing.Sequence(cs...), str).Named(fmt.Sprintf("%q", s))
}

// While reads runes as long as pred holds, possibly none.
func While(pred func(rune) bool) *Parser[string] {
	return parsing.Map(parsing.Many(Satisfy(pred)), str)
}

func str(rs []rune) string {
	return string(rs)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

var (
	Alpha    = Satisfy(unicode.IsLetter)
	Alnum    = Satisfy(func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) })
	Lower    = Satisfy(unicode.IsLower)
	Upper    = Satisfy(unicode.IsUpper)
	Blank    = Satisfy(unicode.IsSpace)
	Digit    = Satisfy(isDigit)
	BinDigit = OneOf("01")
	OctDigit = OneOf("01234567")
	HexDigit = OneOf("0123456789ABCDEFabcdef")

	Blanks = parsing.Map(parsing.Many(Blank), str)

	Dot       = Char('.')
	Comma     = Char(',')
	Semicolon = Char(';')
	Colon     = Char(':')
	Hyphen    = Char('-')
	Underline = Char('_')
	Quotation = Char('"')
	LRound    = Char('(')
	RRound    = Char(')')
	LSquare   = Char('[')
	RSquare   = Char(']')
	LCurly    = Char('{')
	RCurly    = Char('}')

	// End succeeds only once the whole input has been read.
	End = parsing.EOSShow(parsing.ShowRune)
)

type streamRuneReader struct {
	s parsing.Stream[rune]
}

// Every rune counts as size 1, so the regexp reports offsets in runes.
func (me *streamRuneReader) ReadRune() (r rune, size int, err error) {
	if me.s.EOS() {
		return 0, 0, io.EOF
	}
	var rs []rune
	rs, me.s = me.s.Read(1)
	return rs[0], 1, nil
}

// Regexp matches pattern at the current position. The value holds the whole
// match followed by the submatches.
func Regexp(pattern string) *Parser[[]string] {
	re := regexp.MustCompile(`^(?:` + pattern + `)`)
	name := "/" + pattern + "/"
	return parsing.New(name, func(c Context) parsing.Result[rune, []string] {
		locs := re.FindReaderSubmatchIndex(&streamRuneReader{c.Stream()})
		if locs == nil {
			got := "<EOS>"
			if !c.EOS() {
				got = parsing.ShowRune(c.Peek(1)[0])
			}
			return parsing.Result[rune, []string]{
				Context: c,
				Err:     parsing.NewExpected(name, parsing.NewUnExpected(got, c.Position())),
			}
		}
		matched, next := c.Advance(locs[1])
		groups := make([]string, 0, len(locs)/2)
		for i := 0; i < len(locs); i += 2 {
			if locs[i] < 0 {
				groups = append(groups, "")
				continue
			}
			groups = append(groups, string(matched[locs[i]:locs[i+1]]))
		}
		return parsing.Result[rune, []string]{Context: next, Value: groups, Consumed: len(matched)}
	})
}
