package parsing

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUndefined  = errors.New("parser used before Define")
	ErrRedefined  = errors.New("parser defined twice")
	ErrNoProgress = errors.New("repetition of a parser that consumes no input")
)

// Result of running a parser from some Context. Err is nil on success. On
// failure Value is the zero value. Consumed counts the elements the attempt
// used, for failures too, so alternation can tell a clean miss from a
// committed one. Context always sits Consumed elements after the start.
type Result[I, R any] struct {
	Context  Context[I]
	Value    R
	Err      Error
	Consumed int
}

func (r Result[I, R]) OK() bool {
	return r.Err == nil
}

func okay[I, R any](c Context[I], v R, consumed int) Result[I, R] {
	return Result[I, R]{Context: c, Value: v, Consumed: consumed}
}

func fail[I, R any](c Context[I], err Error, consumed int) Result[I, R] {
	return Result[I, R]{Context: c, Err: err, Consumed: consumed}
}

type ParseFunc[I, R any] func(Context[I]) Result[I, R]

// Parser is a suspended computation over a Context. Parsers are built once,
// usually at init, and may be run any number of times, from any number of
// goroutines, once every Forward placeholder they reach has been defined.
type Parser[I, R any] struct {
	name string
	fn   ParseFunc[I, R]
	fwd  bool
}

func New[I, R any](name string, fn ParseFunc[I, R]) *Parser[I, R] {
	return &Parser[I, R]{name: name, fn: fn}
}

// Forward declares a placeholder for a parser that refers to itself, directly
// or through others. Compose the grammar against it, then call Define.
func Forward[I, R any](name string) *Parser[I, R] {
	return &Parser[I, R]{name: name, fwd: true}
}

// Define binds a Forward placeholder to its definition. It must be called
// exactly once, before the placeholder is run.
func (p *Parser[I, R]) Define(target *Parser[I, R]) {
	if !p.fwd {
		panic(errors.Wrapf(ErrRedefined, "%s is not a forward declaration", p.name))
	}
	if p.fn != nil {
		panic(errors.Wrapf(ErrRedefined, "%s", p.name))
	}
	p.fn = target.Run
}

func (p *Parser[I, R]) Name() string {
	return p.name
}

// Named returns a parser with the same behaviour under another name. Names
// only show up in traces and programming-error panics.
func (p *Parser[I, R]) Named(name string) *Parser[I, R] {
	return New(name, p.Run)
}

func (p *Parser[I, R]) String() string {
	return p.name
}

func (p *Parser[I, R]) Run(c Context[I]) Result[I, R] {
	if p.fn == nil {
		panic(errors.Wrapf(ErrUndefined, "%s at %s", p.name, c.Position()))
	}
	return p.fn(c)
}

// Okay always succeeds with v and consumes nothing.
func Okay[I, R any](v R) *Parser[I, R] {
	return New("okay", func(c Context[I]) Result[I, R] {
		return okay(c, v, 0)
	})
}

// Fail always fails with err and consumes nothing.
func Fail[I, R any](err Error) *Parser[I, R] {
	if err == nil {
		panic("parsing: Fail with nil error")
	}
	return New("fail", func(c Context[I]) Result[I, R] {
		return fail[I, R](c, err, 0)
	})
}

// Bind runs p and feeds its value to f, running the parser f returns from
// where p stopped. Consumed counts add up; a failure of p short-circuits.
func Bind[I, R, S any](p *Parser[I, R], f func(R) *Parser[I, S]) *Parser[I, S] {
	return New("bind("+p.name+")", func(c Context[I]) Result[I, S] {
		r1 := p.Run(c)
		if !r1.OK() {
			return fail[I, S](r1.Context, r1.Err, r1.Consumed)
		}
		r2 := f(r1.Value).Run(r1.Context)
		r2.Consumed += r1.Consumed
		return r2
	})
}

// Map transforms the value of a successful parse.
func Map[I, R, S any](p *Parser[I, R], f func(R) S) *Parser[I, S] {
	return New("map("+p.name+")", func(c Context[I]) Result[I, S] {
		r := p.Run(c)
		if !r.OK() {
			return fail[I, S](r.Context, r.Err, r.Consumed)
		}
		return okay(r.Context, f(r.Value), r.Consumed)
	})
}

// Apply runs pf, then p, and applies the function to p's value.
func Apply[I, R, S any](p *Parser[I, R], pf *Parser[I, func(R) S]) *Parser[I, S] {
	return Bind(pf, func(f func(R) S) *Parser[I, S] {
		return Map(p, f)
	})
}

// Alter is backtracking alternation. When p fails, q runs from the position
// p started at, however much p had consumed. When both fail their errors are
// merged into an AlterError and the result consumes nothing, so an enclosing
// alternation can still try its own siblings.
func (p *Parser[I, R]) Alter(q *Parser[I, R]) *Parser[I, R] {
	return New(p.name+"|"+q.name, func(c Context[I]) Result[I, R] {
		r1 := p.Run(c)
		if r1.OK() {
			return r1
		}
		start := c.State()
		r2 := q.Run(r1.Context.Backtrack(r1.Consumed, start))
		if r2.OK() {
			return r2
		}
		return fail[I, R](r2.Context.Backtrack(r2.Consumed, start), NewAlterError(r1.Err, r2.Err), 0)
	})
}

// FastAlter is committed alternation: q is only tried when p failed without
// consuming input. A failure after consumption is final. When both fail, q's
// error is reported as is.
func (p *Parser[I, R]) FastAlter(q *Parser[I, R]) *Parser[I, R] {
	return New(p.name+"/"+q.name, func(c Context[I]) Result[I, R] {
		r1 := p.Run(c)
		if r1.OK() || r1.Consumed > 0 {
			return r1
		}
		return q.Run(r1.Context)
	})
}

// Label wraps any failure of p as Expected(name, cause).
func (p *Parser[I, R]) Label(name string) *Parser[I, R] {
	return New(name, func(c Context[I]) Result[I, R] {
		r := p.Run(c)
		if r.OK() {
			return r
		}
		r.Err = NewExpected(name, r.Err)
		return r
	})
}

// Where keeps successful values that satisfy pred. A rejected value becomes
// an UnExpected at the position it started at, and the failure consumes
// nothing.
func (p *Parser[I, R]) Where(pred func(R) bool) *Parser[I, R] {
	return p.WhereShow(pred, func(v R) string { return describe(v) })
}

// WhereShow is Where with a custom rendering of rejected values.
func (p *Parser[I, R]) WhereShow(pred func(R) bool, show func(R) string) *Parser[I, R] {
	return New(p.name, func(c Context[I]) Result[I, R] {
		r := p.Run(c)
		if !r.OK() || pred(r.Value) {
			return r
		}
		return fail[I, R](c, NewUnExpected(show(r.Value), c.Position()), 0)
	})
}

// Try makes a failure of p report no consumption, so FastAlter and the chain
// combinators treat it as a clean miss.
func Try[I, R any](p *Parser[I, R]) *Parser[I, R] {
	return New("try("+p.name+")", func(c Context[I]) Result[I, R] {
		r := p.Run(c)
		if r.OK() {
			return r
		}
		return fail[I, R](r.Context.Backtrack(r.Consumed, c.State()), r.Err, 0)
	})
}

// Absent succeeds, consuming nothing, when p fails at the current position.
func Absent[I, R any](p *Parser[I, R]) *Parser[I, struct{}] {
	return New("absent("+p.name+")", func(c Context[I]) Result[I, struct{}] {
		r := p.Run(c)
		back := r.Context.Backtrack(r.Consumed, c.State())
		if r.OK() {
			return fail[I, struct{}](back, NewUnExpected(describe(r.Value), c.Position()), 0)
		}
		return okay(back, struct{}{}, 0)
	})
}

// Item reads a single element.
func Item[I any]() *Parser[I, I] {
	return New("item", func(c Context[I]) Result[I, I] {
		if c.EOS() {
			return fail[I, I](c, EOSError(c.Position()), 0)
		}
		items, next := c.Advance(1)
		return okay(next, items[0], 1)
	})
}

// Look returns the next element without consuming it.
func Look[I any]() *Parser[I, I] {
	return New("look", func(c Context[I]) Result[I, I] {
		if c.EOS() {
			return fail[I, I](c, EOSError(c.Position()), 0)
		}
		return okay(c, c.Peek(1)[0], 0)
	})
}

// EOS succeeds only at the end of the input.
func EOS[I any]() *Parser[I, struct{}] {
	return EOSShow(func(v I) string { return describe(v) })
}

// EOSShow is EOS with a custom rendering of leftover elements.
func EOSShow[I any](show func(I) string) *Parser[I, struct{}] {
	return New("eos", func(c Context[I]) Result[I, struct{}] {
		if !c.EOS() {
			return fail[I, struct{}](c, NewUnExpected(show(c.Peek(1)[0]), c.Position()), 0)
		}
		return okay(c, struct{}{}, 0)
	})
}

// Run applies p to a fresh context and converts a failure into a
// *SyntaxError. It is the one place a failure leaves the combinator layer as
// a Go error.
func Run[I, R any](p *Parser[I, R], c Context[I]) (R, error) {
	r := p.Run(c)
	if !r.OK() {
		var zero R
		return zero, &SyntaxError{
			Position: r.Context.Position(),
			Consumed: r.Consumed,
			Err:      r.Err,
		}
	}
	return r.Value, nil
}

func (me Result[I, R]) String() string {
	if me.OK() {
		return fmt.Sprintf("okay(%v) consumed %d at %s", me.Value, me.Consumed, me.Context.Position())
	}
	return fmt.Sprintf("fail consumed %d at %s\n%s", me.Consumed, me.Context.Position(), me.Err)
}
