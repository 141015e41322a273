package text

import "github.com/robbert229/parsec/parsing"

// Lexeme makes p a token: blanks following it are skipped, so grammars need
// not interleave whitespace handling.
func Lexeme[R any](p *Parser[R]) *Parser[R] {
	return parsing.RTrim(p, Blank).Named(p.Name())
}

// LeadingLexeme skips blanks before p instead.
func LeadingLexeme[R any](p *Parser[R]) *Parser[R] {
	return parsing.LTrim(p, Blank).Named(p.Name())
}

// Symbol is the lexeme of a literal.
func Symbol(s string) *Parser[string] {
	return Lexeme(Literal(s))
}
