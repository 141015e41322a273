package text

import (
	"time"

	"github.com/robbert229/parsec/parsing"
)

var (
	// A letter or underscore followed by letters, digits and underscores.
	Identifier = concat(
		one(Alpha.Alter(Underline)),
		parsing.Map(parsing.Many(Alnum.Alter(Underline)), str),
	).Label("identifier")

	escapes = map[rune]rune{
		'"':  '"',
		'\\': '\\',
		'/':  '/',
		'n':  '\n',
		't':  '\t',
		'r':  '\r',
		'b':  '\b',
		'f':  '\f',
	}
	escaped = parsing.Map(parsing.Prefix(Char('\\'), OneOf(`"\/ntrbf`)), func(r rune) rune {
		return escapes[r]
	})

	// A double quoted string; the value has its escapes resolved.
	String = parsing.Map(
		parsing.Between(Quotation, parsing.Many(escaped.Alter(NoneOf(`"\`))), Quotation),
		str,
	).Label("string")

	Date = convert(
		concat(digitN(4), one(Hyphen), digitN(2), one(Hyphen), digitN(2)),
		func(s string) (time.Time, error) { return time.Parse(time.DateOnly, s) },
	).Label("date")

	Time = convert(
		concat(digitN(2), one(Colon), digitN(2), one(Colon), digitN(2)),
		func(s string) (time.Time, error) { return time.Parse(time.TimeOnly, s) },
	).Label("time")

	// A date and a time separated by a space or a T.
	DateTime = parsing.Map(
		parsing.Pair(parsing.Suffix(Date, OneOf(" T")), Time),
		func(dt parsing.Tuple[time.Time, time.Time]) time.Time {
			d, t := dt.First, dt.Second
			return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
		},
	).Label("datetime")
)

func digitN(n int) *Parser[string] {
	return parsing.Map(parsing.Count(n, Digit), str)
}
