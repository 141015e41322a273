package parsing

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

func bctx(s string) Context[byte] {
	return NewSliceContext([]byte(s))
}

func char(b byte) *Parser[byte, byte] {
	return Token(b)
}

func lit(s string) *Parser[byte, string] {
	return Map(Tokens([]byte(s)...), func(bs []byte) string { return string(bs) })
}

func TestParserName(t *testing.T) {
	p := New("digit", func(c Context[byte]) Result[byte, byte] {
		return Item[byte]().Run(c)
	})
	assert.Equal(t, "digit", p.Name())
	assert.Equal(t, "number", p.Named("number").Name())
	assert.Equal(t, "digit|okay", p.Alter(Okay[byte](byte(0))).Name())
	assert.Equal(t, "letter", p.Label("letter").Name())
}

func TestOkayAndFail(t *testing.T) {
	r := Okay[byte](42).Run(bctx("abc"))
	require.True(t, r.OK())
	assert.Equal(t, 42, r.Value)
	assert.Equal(t, 0, r.Consumed)
	assert.Equal(t, 0, r.Context.Offset())

	err := NewUnExpected("x", "0")
	r = Fail[byte, int](err).Run(bctx("abc"))
	require.False(t, r.OK())
	assert.Same(t, err, r.Err)
	assert.Equal(t, 0, r.Consumed)
	assert.Panics(t, func() { Fail[byte, int](nil) })
}

func TestOkayIdentities(t *testing.T) {
	f := func(v int) *Parser[byte, int] {
		return Map(Item[byte](), func(b byte) int { return v + int(b) })
	}
	for _, input := range []string{"a", "", "xyz"} {
		assert.Equal(t, f(3).Run(bctx(input)), Bind(Okay[byte](3), f).Run(bctx(input)), input)

		p := lit("xy")
		assert.Equal(t, p.Run(bctx(input)), Bind(p, Okay[byte, string]).Run(bctx(input)), input)
	}
}

func TestBindAssociativity(t *testing.T) {
	p := lit("ab")
	f := func(s string) *Parser[byte, string] {
		return Map(Item[byte](), func(b byte) string { return s + string(b) })
	}
	g := func(s string) *Parser[byte, int] {
		return Map(Some(char('!')), func(bs []byte) int { return len(s) + len(bs) })
	}
	left := Bind(Bind(p, f), g)
	right := Bind(p, func(s string) *Parser[byte, int] { return Bind(f(s), g) })
	for _, input := range []string{"abc!!", "abc", "a", "abc!x"} {
		assert.Equal(t, left.Run(bctx(input)), right.Run(bctx(input)), input)
	}
}

func TestConsumptionAccounting(t *testing.T) {
	p := lit("ab")
	q := Some(Item[byte]())
	c := bctx("abcde")

	r := p.Run(c)
	require.True(t, r.OK())
	require.Equal(t, 2, r.Consumed)

	resumed := NewContext[byte](c.Stream().Seek(r.Consumed), IndexState[byte](r.Consumed))
	fromOffset := q.Run(resumed)
	fromContext := q.Run(r.Context)
	assert.Equal(t, fromOffset, fromContext)

	both := Bind(p, func(string) *Parser[byte, []byte] { return q }).Run(c)
	assert.Equal(t, fromContext.Value, both.Value)
	assert.Equal(t, r.Consumed+fromContext.Consumed, both.Consumed)
	assert.Equal(t, 5, both.Context.Offset())
}

func TestMapDoesNotRerun(t *testing.T) {
	runs := 0
	p := New("counted", func(c Context[byte]) Result[byte, byte] {
		runs++
		return Item[byte]().Run(c)
	})
	r := Map(Map(p, func(b byte) int { return int(b) }), func(i int) int { return i + 1 }).Run(bctx("a"))
	require.True(t, r.OK())
	assert.Equal(t, int('a')+1, r.Value)
	assert.Equal(t, 1, runs)
}

func TestApply(t *testing.T) {
	double := Map(char('d'), func(byte) func(int) int { return func(i int) int { return i * 2 } })
	digit := Map(Item[byte](), func(b byte) int { return int(b - '0') })
	r := Apply(digit, double).Run(bctx("d7"))
	require.True(t, r.OK())
	assert.Equal(t, 14, r.Value)
	assert.Equal(t, 2, r.Consumed)
}

func TestAlterBacktracks(t *testing.T) {
	p := lit("abc")
	r1 := p.Run(bctx("abd"))
	require.False(t, r1.OK())
	require.Equal(t, 2, r1.Consumed)

	r := p.Alter(lit("abd")).Run(bctx("abd"))
	require.True(t, r.OK())
	assert.Equal(t, "abd", r.Value)
	assert.Equal(t, 3, r.Consumed)
	assert.Equal(t, "3", r.Context.Position())
}

func TestAlterFailureConsumesNothing(t *testing.T) {
	r := lit("abc").Alter(lit("abe")).Run(bctx("abd"))
	require.False(t, r.OK())
	assert.Equal(t, 0, r.Consumed)
	assert.Equal(t, 0, r.Context.Offset())
	// Both branches stumble on the same "d", which is reported once.
	assert.True(t, Equal(NewAlterError(NewUnExpected("d", "2")), r.Err), r.Err.Error())

	outer := lit("abc").Alter(lit("abe")).Alter(lit("ab"))
	r = outer.Run(bctx("abd"))
	require.True(t, r.OK())
	assert.Equal(t, "ab", r.Value)
}

func TestFastAlter(t *testing.T) {
	r := lit("abc").FastAlter(lit("abd")).Run(bctx("abd"))
	require.False(t, r.OK())
	assert.Equal(t, 2, r.Consumed)
	assert.True(t, Equal(NewUnExpected("d", "2"), r.Err))

	r = lit("x").FastAlter(lit("ab")).Run(bctx("abd"))
	require.True(t, r.OK())
	assert.Equal(t, "ab", r.Value)

	r2 := char('x').Label("x").FastAlter(char('y').Label("y")).Run(bctx("a"))
	require.False(t, r2.OK())
	assert.True(t, Equal(NewExpected("y", NewUnExpected("a", "0")), r2.Err), r2.Err.Error())
}

func TestDefine(t *testing.T) {
	nest := Forward[byte, int]("nest")
	nest.Define(Map(Between(char('('), nest, char(')')), func(d int) int { return d + 1 }).Alter(Okay[byte](0)))

	v, err := Run(nest, bctx("((()))"))
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	assert.PanicsWithError(t, "nest: parser defined twice", func() { nest.Define(Okay[byte](1)) })
	assert.Panics(t, func() { lit("a").Define(lit("b")) })

	undefined := Forward[byte, int]("later")
	assert.PanicsWithError(t, "later at 0: parser used before Define", func() { undefined.Run(bctx("")) })
	defer func() {
		r := recover()
		require.NotNil(t, r)
		assert.Equal(t, ErrUndefined, errors.Cause(r.(error)))
	}()
	Pair(lit("a"), undefined).Run(bctx("a"))
}

func TestWhere(t *testing.T) {
	vowel := Item[byte]().Where(func(b byte) bool { return b == 'a' || b == 'e' })
	r := vowel.Run(bctx("e"))
	require.True(t, r.OK())
	assert.Equal(t, 1, r.Consumed)

	r = vowel.Run(bctx("xa"))
	require.False(t, r.OK())
	assert.Equal(t, 0, r.Consumed)
	assert.Equal(t, 0, r.Context.Offset())
	assert.True(t, Equal(NewUnExpected("x", "0"), r.Err))

	r2 := lit("ab").WhereShow(func(s string) bool { return false }, func(s string) string { return "<" + s + ">" }).Run(bctx("ab"))
	require.False(t, r2.OK())
	assert.Equal(t, `UnExpected "<ab>" at 0`, r2.Err.Error())
}

func TestTry(t *testing.T) {
	r := Try(lit("abc")).FastAlter(lit("abd")).Run(bctx("abd"))
	require.True(t, r.OK())
	assert.Equal(t, "abd", r.Value)
}

func TestLookaheads(t *testing.T) {
	r := Look[byte]().Run(bctx("q"))
	require.True(t, r.OK())
	assert.Equal(t, byte('q'), r.Value)
	assert.Equal(t, 0, r.Consumed)

	assert.False(t, Look[byte]().Run(bctx("")).OK())

	r2 := Absent(char('q')).Run(bctx("r"))
	assert.True(t, r2.OK())
	r2 = Absent(char('q')).Run(bctx("q"))
	require.False(t, r2.OK())
	assert.Equal(t, 0, r2.Consumed)

	assert.True(t, EOS[byte]().Run(bctx("")).OK())
	r2 = EOS[byte]().Run(bctx("z"))
	require.False(t, r2.OK())
	assert.True(t, Equal(NewUnExpected("z", "0"), r2.Err))
}

func TestItem(t *testing.T) {
	r := Item[byte]().Run(bctx(""))
	require.False(t, r.OK())
	assert.True(t, Equal(EOSError("0"), r.Err))

	r = Item[byte]().Run(bctx("hi"))
	require.True(t, r.OK())
	assert.Equal(t, byte('h'), r.Value)
	assert.Equal(t, "1", r.Context.Position())
}

func TestRun(t *testing.T) {
	_, err := Run(Pair(lit("ab"), lit("cd")), bctx("abce"))
	require.Error(t, err)
	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 3, se.Consumed)
	assert.Equal(t, "3", se.Position)
	assert.Equal(t, "3\nUnExpected \"e\" at 3", err.Error())
}

func TestTrace(t *testing.T) {
	commonlog.SetMaxLevel(commonlog.Debug)
	t.Cleanup(func() { commonlog.SetMaxLevel(commonlog.Notice) })

	p := Trace(lit("ab"))
	assert.Equal(t, lit("ab").Run(bctx("abc")), p.Run(bctx("abc")))
	assert.Equal(t, lit("ab").Run(bctx("ax")), p.Run(bctx("ax")))
}
