package text

import (
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"

	"github.com/robbert229/parsec/parsing"
)

var log = commonlog.GetLogger("parsec.text")

// Options represent all of the available options when parsing with
// ParseWithOptions.
type Options struct {
	source     string
	normalize  bool
	foldMarks  bool
	consumeAll bool
	trace      bool
}

// NewDefaultOptions creates the default Options: no source name, the input
// taken as is and trailing input allowed.
func NewDefaultOptions() *Options {
	return &Options{}
}

// SetSourceName names the input in positions, as in "main.calc:1:4".
func (opts *Options) SetSourceName(name string) *Options {
	opts.source = name
	return opts
}

// SetNormalize converts the input to Unicode NFC before parsing, so a
// character and its combining mark are read as one rune.
// Default: false
func (opts *Options) SetNormalize(value bool) *Options {
	opts.normalize = value
	return opts
}

// SetFoldMarks strips nonspacing marks (accents) from the input, so "café"
// reads as "cafe". It implies normalization.
// Default: false
func (opts *Options) SetFoldMarks(value bool) *Options {
	opts.foldMarks = value
	return opts
}

// SetConsumeAll makes leftover input after the parser an error.
// Default: false
func (opts *Options) SetConsumeAll(value bool) *Options {
	opts.consumeAll = value
	return opts
}

// SetTrace logs the parse at debug level.
// Default: false
func (opts *Options) SetTrace(value bool) *Options {
	opts.trace = value
	return opts
}

// Parse runs p over input with the default options.
func Parse[R any](p *Parser[R], input string) (R, error) {
	return ParseWithOptions(p, input, NewDefaultOptions())
}

// ParseWithOptions runs p over input. A failed parse returns a
// *parsing.SyntaxError.
func ParseWithOptions[R any](p *Parser[R], input string, opts *Options) (ret R, err error) {
	prepared, err := prepare(input, opts.normalize, opts.foldMarks)
	if err != nil {
		err = errors.Wrap(err, "normalizing input")
		return
	}
	if opts.consumeAll {
		p = parsing.Suffix(p, End).Named(p.Name())
	}
	if opts.trace {
		p = parsing.Trace(p)
		log.Debugf("parsing %d runes of %q with %s", len([]rune(prepared)), opts.source, p.Name())
	}
	ret, err = parsing.Run(p, NewContext(prepared, opts.source))
	if err != nil && opts.trace {
		log.Debugf("%s", err)
	}
	return
}
