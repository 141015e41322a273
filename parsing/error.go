package parsing

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bradfitz/iter"
)

// Error is a parse failure. The set of implementations is closed:
// *UnExpected, *Expected and *AlterError. Errors are immutable values; use
// Equal for structural comparison.
type Error interface {
	error
	lines(depth int) []string
	key() string
}

// UnExpected is a concrete value that was not what a predicate demanded.
type UnExpected struct {
	Value    string
	Position string
}

func NewUnExpected(value, position string) *UnExpected {
	return &UnExpected{Value: value, Position: position}
}

// EOSError reports a read past the end of the input.
func EOSError(position string) *UnExpected {
	return NewUnExpected("<EOS>", position)
}

func (e *UnExpected) lines(depth int) []string {
	return []string{indent(depth) + fmt.Sprintf("UnExpected %q at %s", e.Value, e.Position)}
}

func (e *UnExpected) key() string {
	return "U" + strconv.Quote(e.Value) + "@" + e.Position
}

func (e *UnExpected) Error() string {
	return render(e)
}

// Expected is a named construct that failed, wrapping the more specific
// causes.
type Expected struct {
	Label    string
	Children []Error
}

// NewExpected flattens AlterError children into the new node and drops
// duplicates.
func NewExpected(label string, children ...Error) *Expected {
	return &Expected{
		Label:    label,
		Children: resolve(children),
	}
}

func (e *Expected) lines(depth int) []string {
	lines := []string{indent(depth) + fmt.Sprintf("Expected %q", e.Label)}
	for _, c := range e.Children {
		lines = append(lines, c.lines(depth+1)...)
	}
	return lines
}

func (e *Expected) key() string {
	return "E" + strconv.Quote(e.Label) + keys(e.Children)
}

func (e *Expected) Error() string {
	return render(e)
}

// AlterError aggregates the causes of every failed branch of an alternation.
type AlterError struct {
	Children []Error
}

// NewAlterError joins the given causes. Nested AlterErrors are flattened and
// structurally equal causes are kept once, in first-seen order.
func NewAlterError(children ...Error) *AlterError {
	return &AlterError{
		Children: resolve(children),
	}
}

func (e *AlterError) lines(depth int) []string {
	lines := []string{indent(depth) + "AlterError"}
	for _, c := range e.Children {
		lines = append(lines, c.lines(depth+1)...)
	}
	return lines
}

func (e *AlterError) key() string {
	return "A" + keys(e.Children)
}

func (e *AlterError) Error() string {
	return render(e)
}

// Equal reports whether two errors are structurally equal.
func Equal(a, b Error) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.key() == b.key()
}

func resolve(children []Error) []Error {
	var (
		out  []Error
		seen = make(map[string]bool, len(children))
	)
	add := func(c Error) {
		if c == nil {
			return
		}
		k := c.key()
		if seen[k] {
			return
		}
		seen[k] = true
		out = append(out, c)
	}
	for _, c := range children {
		if ae, ok := c.(*AlterError); ok {
			for _, gc := range ae.Children {
				add(gc)
			}
			continue
		}
		add(c)
	}
	return out
}

func keys(errs []Error) string {
	ks := make([]string, 0, len(errs))
	for _, e := range errs {
		ks = append(ks, e.key())
	}
	return "[" + strings.Join(ks, ",") + "]"
}

func indent(depth int) string {
	s := ""
	for range iter.N(depth * 2) {
		s += " "
	}
	return s
}

func render(e Error) string {
	return strings.Join(e.lines(0), "\n")
}

// SyntaxError is a terminal parse failure as handed to callers: the position
// where the parse stopped, how much input the failed attempt consumed and the
// error tree.
type SyntaxError struct {
	Position string
	Consumed int
	Err      Error
}

func (me *SyntaxError) Error() string {
	return me.Position + "\n" + me.Err.Error()
}

func (me *SyntaxError) Unwrap() error {
	return me.Err
}

func describe(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case []rune:
		return string(v)
	case byte:
		return string(rune(v))
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// ShowRune renders a rune for diagnostics. rune is an alias of int32, so
// generic code cannot tell runes from integers on its own.
func ShowRune(r rune) string {
	if !utf8.ValidRune(r) {
		return fmt.Sprintf("%U", r)
	}
	return string(r)
}
