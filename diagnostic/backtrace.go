package diagnostic

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// WrapContext annotates err with a secondary "while parsing <name>" span
// and returns the result. Repeated calls as an error unwinds through
// nested productions build up the context trace described by the error
// handling design: the innermost call is closest to the failing token,
// each enclosing call adds one more frame, entirely through Go's normal
// error-wrapping (no shared mutable state, so it stays safe under
// ParseAll's concurrent fan-out).
func WrapContext(err error, name string, pos, end lexer.Position) error {
	if err == nil {
		return nil
	}
	return WithError(err, pos, end, Spanf(Secondary, pos, end, "while parsing %s", name))
}

// Frames walks the Unwrap chain of err and collects every "while parsing
// X" message recorded by WrapContext, innermost first.
func Frames(err error) []string {
	var frames []string
	for err != nil {
		if se, ok := err.(*SpanError); ok {
			// The chain is walked outermost first, so each deeper
			// SpanError's frames go ahead of those already collected.
			var own []string
			for _, span := range se.Spans {
				if span.Type == Secondary {
					own = append(own, span.Message)
				}
			}
			frames = append(own, frames...)
			err = se.Unwrap()
			continue
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return frames
}
