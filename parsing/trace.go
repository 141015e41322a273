package parsing

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("parsec.parsing")

// Trace logs each attempt of p and its outcome at debug level. Results are
// passed through untouched.
func Trace[I, R any](p *Parser[I, R]) *Parser[I, R] {
	return New(p.name, func(c Context[I]) Result[I, R] {
		if !log.AllowLevel(commonlog.Debug) {
			return p.Run(c)
		}
		log.Debugf("%s: trying at %s", p.name, c.Position())
		r := p.Run(c)
		if r.OK() {
			log.Debugf("%s: matched %d at %s", p.name, r.Consumed, c.Position())
		} else {
			log.Debugf("%s: failed after %d at %s: %s", p.name, r.Consumed, c.Position(), r.Err)
		}
		return r
	})
}
