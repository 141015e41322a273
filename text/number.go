package text

import (
	"strconv"
	"strings"

	"github.com/robbert229/parsec/parsing"
)

// concat runs ps in order and joins their text.
func concat(ps ...*Parser[string]) *Parser[string] {
	return parsing.Map(parsing.Sequence(ps...), func(ss []string) string {
		return strings.Join(ss, "")
	})
}

func one(p *Parser[rune]) *Parser[string] {
	return parsing.Map(p, func(r rune) string { return string(r) })
}

// convert turns text into a value, rejecting text that f cannot convert.
func convert[T any](p *Parser[string], f func(string) (T, error)) *Parser[T] {
	valid := p.Where(func(s string) bool {
		_, err := f(s)
		return err == nil
	})
	return parsing.Map(valid, func(s string) T {
		v, _ := f(s)
		return v
	})
}

var (
	sign    = parsing.Default(one(OneOf("+-")), "")
	digits  = parsing.Map(parsing.Many(Digit), str)
	digits1 = parsing.Map(parsing.Some(Digit), str)

	radixPrefix = func(r string) *Parser[string] {
		return concat(one(Char('0')), one(OneOf(r)))
	}

	// Signed integer texts. The radix prefix is dropped from the value.
	DecInteger = concat(sign, digits1)
	BinInteger = concat(sign, parsing.Prefix(radixPrefix("bB"), parsing.Map(parsing.Some(BinDigit), str)))
	OctInteger = concat(sign, parsing.Prefix(radixPrefix("oO"), parsing.Map(parsing.Some(OctDigit), str)))
	HexInteger = concat(sign, parsing.Prefix(radixPrefix("xX"), parsing.Map(parsing.Some(HexDigit), str)))

	Integer = parsing.Choice(
		convert(HexInteger, parseInt(16)),
		convert(OctInteger, parseInt(8)),
		convert(BinInteger, parseInt(2)),
		convert(DecInteger, parseInt(10)),
	).Label("integer")

	exponent = concat(one(OneOf("eE")), DecInteger)
	dotment  = concat(one(Dot), digits, parsing.Default(exponent, ""))
	// 12.5, 12., 12e3, 12.5e-3
	digitFloat = concat(sign, digits1, dotment.Alter(exponent))
	// .5, .5e3
	dotFloat = concat(sign, one(Dot), digits1, parsing.Default(exponent, ""))

	Float = convert(dotFloat.Alter(digitFloat), func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	}).Label("float number")

	Number = parsing.Map(Float, FloatNum).Alter(parsing.Map(Integer, IntNum)).Label("number")
)

func parseInt(base int) func(string) (int64, error) {
	return func(s string) (int64, error) {
		return strconv.ParseInt(s, base, 64)
	}
}

// Num is either an integer or a float, as written in the input.
type Num struct {
	Int     int64
	Float   float64
	IsFloat bool
}

func IntNum(i int64) Num {
	return Num{Int: i}
}

func FloatNum(f float64) Num {
	return Num{Float: f, IsFloat: true}
}

func (n Num) Float64() float64 {
	if n.IsFloat {
		return n.Float
	}
	return float64(n.Int)
}

func (n Num) String() string {
	if n.IsFloat {
		return strconv.FormatFloat(n.Float, 'g', -1, 64)
	}
	return strconv.FormatInt(n.Int, 10)
}
