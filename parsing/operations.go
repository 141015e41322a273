package parsing

import (
	"slices"

	"github.com/pkg/errors"
)

// Tuple holds the values of two parsers run in sequence.
type Tuple[A, B any] struct {
	First  A
	Second B
}

// Pair runs p and q in order and returns both values.
func Pair[I, A, B any](p *Parser[I, A], q *Parser[I, B]) *Parser[I, Tuple[A, B]] {
	return Apply(q, Map(p, func(a A) func(B) Tuple[A, B] {
		return func(b B) Tuple[A, B] {
			return Tuple[A, B]{First: a, Second: b}
		}
	}))
}

// Prefix runs pre, then p, keeping p's value.
func Prefix[I, P, R any](pre *Parser[I, P], p *Parser[I, R]) *Parser[I, R] {
	return Apply(p, Map(pre, func(P) func(R) R {
		return func(r R) R { return r }
	}))
}

// Suffix runs p, then suf, keeping p's value.
func Suffix[I, R, S any](p *Parser[I, R], suf *Parser[I, S]) *Parser[I, R] {
	return Apply(suf, Map(p, func(r R) func(S) R {
		return func(S) R { return r }
	}))
}

// Between runs open, p and close, keeping p's value.
func Between[I, O, R, C any](open *Parser[I, O], p *Parser[I, R], close *Parser[I, C]) *Parser[I, R] {
	return Suffix(Prefix(open, p), close)
}

// Ignore discards the value of p.
func Ignore[I, R any](p *Parser[I, R]) *Parser[I, struct{}] {
	return Map(p, func(R) struct{} { return struct{}{} })
}

// Choice is Alter over any number of parsers.
func Choice[I, R any](ps ...*Parser[I, R]) *Parser[I, R] {
	if len(ps) == 0 {
		panic("parsing: Choice of nothing")
	}
	p := ps[0]
	for _, q := range ps[1:] {
		p = p.Alter(q)
	}
	return p
}

// Sequence runs every parser in order and collects their values.
func Sequence[I, R any](ps ...*Parser[I, R]) *Parser[I, []R] {
	acc := Okay[I](([]R)(nil))
	for _, p := range ps {
		acc = Map(Pair(acc, p), func(t Tuple[[]R, R]) []R {
			return append(slices.Clip(t.First), t.Second)
		})
	}
	return acc
}

// Option is the value of Maybe: Ok reports whether p matched.
type Option[R any] struct {
	Value R
	Ok    bool
}

// Maybe tries p and succeeds either way.
func Maybe[I, R any](p *Parser[I, R]) *Parser[I, Option[R]] {
	some := Map(p, func(v R) Option[R] { return Option[R]{Value: v, Ok: true} })
	return some.Alter(Okay[I](Option[R]{}))
}

// Default tries p, yielding v when it fails.
func Default[I, R any](p *Parser[I, R], v R) *Parser[I, R] {
	return p.Alter(Okay[I](v))
}

// Repeats is the shared loop behind the repetition combinators. A negative
// max means no upper bound.
type Repeats[I, R any] struct {
	min, max int
	p        *Parser[I, R]
}

func (me Repeats[I, R]) Parse(c Context[I]) Result[I, []R] {
	var (
		values   []R
		consumed int
	)
	for i := 0; me.max < 0 || i < me.max; i++ {
		r := me.p.Run(c)
		if !r.OK() {
			if i < me.min {
				return fail[I, []R](r.Context, r.Err, consumed+r.Consumed)
			}
			// The failed attempt is abandoned, as in some|okay(nil).
			break
		}
		if r.Consumed == 0 && me.max < 0 {
			panic(errors.Wrapf(ErrNoProgress, "%s at %s", me.p.name, c.Position()))
		}
		values = append(values, r.Value)
		consumed += r.Consumed
		c = r.Context
	}
	return okay(c, values, consumed)
}

func Repeat[I, R any](min, max int, p *Parser[I, R]) *Parser[I, []R] {
	return New(p.name+"{}", Repeats[I, R]{min: min, max: max, p: p}.Parse)
}

// Many matches p zero or more times. p must consume input whenever it
// succeeds; a parser that does not makes Many panic with ErrNoProgress.
func Many[I, R any](p *Parser[I, R]) *Parser[I, []R] {
	return New(p.name+"*", Repeats[I, R]{min: 0, max: -1, p: p}.Parse)
}

// Some matches p one or more times.
func Some[I, R any](p *Parser[I, R]) *Parser[I, []R] {
	return New(p.name+"+", Repeats[I, R]{min: 1, max: -1, p: p}.Parse)
}

// Count matches p exactly n times.
func Count[I, R any](n int, p *Parser[I, R]) *Parser[I, []R] {
	return Repeat(n, n, p)
}

// ManyTill matches p zero or more times, then end.
func ManyTill[I, R, E any](p *Parser[I, R], end *Parser[I, E]) *Parser[I, []R] {
	return Suffix(Many(p), end)
}

func cons[R any](x R, xs []R) []R {
	return append([]R{x}, xs...)
}

// SepBy1 matches one or more p separated by sep.
func SepBy1[I, R, S any](p *Parser[I, R], sep *Parser[I, S]) *Parser[I, []R] {
	return Bind(p, func(x R) *Parser[I, []R] {
		return Map(Many(Prefix(sep, p)), func(xs []R) []R { return cons(x, xs) })
	})
}

// SepBy matches zero or more p separated by sep.
func SepBy[I, R, S any](p *Parser[I, R], sep *Parser[I, S]) *Parser[I, []R] {
	return Default(SepBy1(p, sep), []R(nil))
}

// EndBy matches zero or more p, each terminated by sep.
func EndBy[I, R, S any](p *Parser[I, R], sep *Parser[I, S]) *Parser[I, []R] {
	return Many(Suffix(p, sep))
}

// EndBy1 matches one or more p, each terminated by sep.
func EndBy1[I, R, S any](p *Parser[I, R], sep *Parser[I, S]) *Parser[I, []R] {
	return Some(Suffix(p, sep))
}

// LTrim skips any number of ignore before p.
func LTrim[I, R, X any](p *Parser[I, R], ignore *Parser[I, X]) *Parser[I, R] {
	return Prefix(Many(ignore), p)
}

// RTrim skips any number of ignore after p.
func RTrim[I, R, X any](p *Parser[I, R], ignore *Parser[I, X]) *Parser[I, R] {
	return Suffix(p, Many(ignore))
}

// Trim skips any number of ignore on both sides of p.
func Trim[I, R, X any](p *Parser[I, R], ignore *Parser[I, X]) *Parser[I, R] {
	return RTrim(LTrim(p, ignore), ignore)
}

// Eq accepts only values equal to v.
func Eq[I any, R comparable](p *Parser[I, R], v R) *Parser[I, R] {
	return p.Where(func(x R) bool { return x == v })
}

// Neq accepts any value but v.
func Neq[I any, R comparable](p *Parser[I, R], v R) *Parser[I, R] {
	return p.Where(func(x R) bool { return x != v })
}

// In accepts values from vs.
func In[I any, R comparable](p *Parser[I, R], vs ...R) *Parser[I, R] {
	return p.Where(func(x R) bool { return slices.Contains(vs, x) })
}

// Token reads one element equal to v.
func Token[I comparable](v I) *Parser[I, I] {
	return Eq(Item[I](), v)
}

// Tokens reads the elements of vs in order.
func Tokens[I comparable](vs ...I) *Parser[I, []I] {
	ps := make([]*Parser[I, I], 0, len(vs))
	for _, v := range vs {
		ps = append(ps, Token(v))
	}
	return Sequence(ps...)
}

// chain is the loop behind the Chain combinators. Each step reads an
// operator and the operand after it. A step that fails ends the chain just
// before it, unless commit is set and the step consumed input, in which case
// the whole chain fails.
type chain[I, R any] struct {
	p      *Parser[I, R]
	step   *Parser[I, Tuple[func(R, R) R, R]]
	commit bool
	right  bool
}

func newChain[I, R any](name string, p *Parser[I, R], op *Parser[I, func(R, R) R], commit, right bool) *Parser[I, R] {
	ch := chain[I, R]{p: p, step: Pair(op, p), commit: commit, right: right}
	return New(name+"("+p.name+")", ch.Parse)
}

func (me chain[I, R]) Parse(c Context[I]) Result[I, R] {
	r := me.p.Run(c)
	if !r.OK() {
		return r
	}
	var (
		values   = []R{r.Value}
		ops      []func(R, R) R
		consumed = r.Consumed
	)
	c = r.Context
	for {
		s := me.step.Run(c)
		if !s.OK() {
			if me.commit && s.Consumed > 0 {
				return fail[I, R](s.Context, s.Err, consumed+s.Consumed)
			}
			break
		}
		if s.Consumed == 0 {
			panic(errors.Wrapf(ErrNoProgress, "%s at %s", me.p.name, c.Position()))
		}
		ops = append(ops, s.Value.First)
		values = append(values, s.Value.Second)
		consumed += s.Consumed
		c = s.Context
	}
	return okay(c, me.fold(values, ops), consumed)
}

func (me chain[I, R]) fold(values []R, ops []func(R, R) R) R {
	if me.right {
		acc := values[len(values)-1]
		for i := len(ops) - 1; i >= 0; i-- {
			acc = ops[i](values[i], acc)
		}
		return acc
	}
	acc := values[0]
	for i, f := range ops {
		acc = f(acc, values[i+1])
	}
	return acc
}

// ChainL1 parses one or more p separated by op and folds them to the left:
// a op b op c is (a op b) op c. An operator without a following operand is
// left unread.
func ChainL1[I, R any](p *Parser[I, R], op *Parser[I, func(R, R) R]) *Parser[I, R] {
	return newChain("chainl1", p, op, false, false)
}

// ChainR1 parses one or more p separated by op and folds them to the right:
// a op b op c is a op (b op c).
func ChainR1[I, R any](p *Parser[I, R], op *Parser[I, func(R, R) R]) *Parser[I, R] {
	return newChain("chainr1", p, op, false, true)
}

// ChainL1Commit is ChainL1 that fails once an operator has consumed input
// and no operand follows.
func ChainL1Commit[I, R any](p *Parser[I, R], op *Parser[I, func(R, R) R]) *Parser[I, R] {
	return newChain("chainl1!", p, op, true, false)
}

// ChainR1Commit is the committed ChainR1.
func ChainR1Commit[I, R any](p *Parser[I, R], op *Parser[I, func(R, R) R]) *Parser[I, R] {
	return newChain("chainr1!", p, op, true, true)
}

// ChainL is ChainL1 yielding initial when there is no operand at all.
func ChainL[I, R any](p *Parser[I, R], op *Parser[I, func(R, R) R], initial R) *Parser[I, R] {
	return Default(ChainL1(p, op), initial)
}

// ChainR is ChainR1 yielding initial when there is no operand at all.
func ChainR[I, R any](p *Parser[I, R], op *Parser[I, func(R, R) R], initial R) *Parser[I, R] {
	return Default(ChainR1(p, op), initial)
}
