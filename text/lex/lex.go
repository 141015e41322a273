// Package lex holds lexeme versions of the text parsers: each skips the
// blanks that follow its token.
package lex

import "github.com/robbert229/parsec/text"

func Char(c rune) *text.Parser[rune] {
	return text.Lexeme(text.Char(c))
}

func Literal(s string) *text.Parser[string] {
	return text.Symbol(s)
}

var (
	Alpha    = text.Lexeme(text.Alpha)
	Alnum    = text.Lexeme(text.Alnum)
	Lower    = text.Lexeme(text.Lower)
	Upper    = text.Lexeme(text.Upper)
	Digit    = text.Lexeme(text.Digit)
	BinDigit = text.Lexeme(text.BinDigit)
	OctDigit = text.Lexeme(text.OctDigit)
	HexDigit = text.Lexeme(text.HexDigit)

	Dot       = text.Lexeme(text.Dot)
	Comma     = text.Lexeme(text.Comma)
	Semicolon = text.Lexeme(text.Semicolon)
	Colon     = text.Lexeme(text.Colon)
	Hyphen    = text.Lexeme(text.Hyphen)
	Underline = text.Lexeme(text.Underline)
	Quotation = text.Lexeme(text.Quotation)
	LRound    = text.Lexeme(text.LRound)
	RRound    = text.Lexeme(text.RRound)
	LSquare   = text.Lexeme(text.LSquare)
	RSquare   = text.Lexeme(text.RSquare)
	LCurly    = text.Lexeme(text.LCurly)
	RCurly    = text.Lexeme(text.RCurly)

	DecInteger = text.Lexeme(text.DecInteger)
	BinInteger = text.Lexeme(text.BinInteger)
	OctInteger = text.Lexeme(text.OctInteger)
	HexInteger = text.Lexeme(text.HexInteger)
	Integer    = text.Lexeme(text.Integer)
	Float      = text.Lexeme(text.Float)
	Number     = text.Lexeme(text.Number)

	Identifier = text.Lexeme(text.Identifier)
	String     = text.Lexeme(text.String)
	Date       = text.Lexeme(text.Date)
	Time       = text.Lexeme(text.Time)
	DateTime   = text.Lexeme(text.DateTime)
)
