package diagnostic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	perrors "github.com/pkg/errors"
)

// IncompleteError is surfaced when the parser needs more input to decide
// (the cursor was exhausted mid-production).
type IncompleteError struct {
	*SpanError
}

func NewIncompleteError(pos lexer.Position, context string) *IncompleteError {
	err := fmt.Errorf("unexpected end of input")
	se := WithError(err, pos, pos, Spanf(Primary, pos, pos, "input ended while parsing %s", context))
	return &IncompleteError{se.(*SpanError)}
}

// SyntaxError is surfaced when the cursor's current byte sequence does
// not match any valid continuation. It adds one primary span at the
// failure position; any "while parsing X" frames come only from
// WrapContext calls already made on err, and no ast production makes
// one, so errors from parser.Parse carry no context chain.
type SyntaxError struct {
	*SpanError
}

func NewSyntaxError(err error, pos, end lexer.Position) *SyntaxError {
	se := WithError(err, pos, end, Spanf(Primary, pos, end, "%s", err))
	return &SyntaxError{se.(*SpanError)}
}

// Error aggregates zero or more diagnostics, preserving each one.
// parser.ParseAll does not build one: it returns the first error any of
// its inputs produced.
type Error struct {
	Err         error
	Diagnostics []error
}

func (e *Error) Error() string {
	var errs []string
	for _, err := range e.Diagnostics {
		errs = append(errs, err.Error())
	}
	return strings.Join(errs, "\n")
}

func (e *Error) Unwrap() error { return e.Err }

// Spans extracts every SpanError embedded in err (possibly wrapped in an
// *Error aggregate).
func Spans(err error) (spans []*SpanError) {
	var e *Error
	if errors.As(err, &e) {
		for _, err := range e.Diagnostics {
			var span *SpanError
			if errors.As(err, &span) {
				spans = append(spans, span)
			}
		}
	}
	var span *SpanError
	if errors.As(err, &span) {
		spans = append(spans, span)
	}
	return
}

// DisplayError writes a numbered, Pretty-rendered report of spans to w.
func DisplayError(ctx context.Context, w io.Writer, spans []*SpanError, err error) {
	if len(spans) == 0 {
		return
	}
	color := Color(ctx)
	if err != nil {
		fmt.Fprintf(w, color.Sprintf("%s: %s\n", color.Bold(color.Red("error")), color.Bold(Cause(err))))
	}
	for i, span := range spans {
		pretty := span.Pretty(ctx, WithNumContext(2))
		lines := strings.Split(pretty, "\n")
		for j, line := range lines {
			if j == 0 {
				lines[j] = fmt.Sprintf(" %d: %s", i+1, line)
			} else {
				lines[j] = fmt.Sprintf("    %s", line)
			}
		}
		fmt.Fprintf(w, "%s\n", strings.Join(lines, "\n"))
	}
}

// Cause unwraps err to its root cause message.
func Cause(err error) string {
	if err == nil {
		return ""
	}
	return perrors.Cause(err).Error()
}
