// Package diagnostic renders parse failures as span-annotated, optionally
// colorized error reports. It is a trimmed adaptation of openllb/hlb's
// diagnostic package: the same SpanError / Pretty rendering and a
// WrapContext/Frames "while parsing X" trace helper, generalized to any
// production name instead of hlb's own fixed keyword set, and without
// the BuildKit source-map plumbing hlb needed to report errors against
// remote frontends.
package diagnostic

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/logrusorgru/aurora"
)

// Type distinguishes the primary span of an error from secondary,
// supporting context spans.
type Type int

const (
	Primary Type = iota
	Secondary
)

// Span is one annotated region of source attached to a SpanError.
type Span struct {
	Message string
	Type    Type
	Start   lexer.Position
	End     lexer.Position
}

// Option decorates a SpanError with an additional Span.
type Option func(*SpanError)

// Spanf builds an Option that appends a formatted Span.
func Spanf(t Type, start, end lexer.Position, format string, a ...interface{}) Option {
	return func(se *SpanError) {
		se.Spans = append(se.Spans, Span{
			Message: fmt.Sprintf(format, a...),
			Type:    t,
			Start:   start,
			End:     end,
		})
	}
}

// WithError wraps err as a SpanError anchored at [pos, end), decorated by
// opts.
func WithError(err error, pos, end lexer.Position, opts ...Option) error {
	se := &SpanError{Err: err, Pos: pos, End: end}
	for _, opt := range opts {
		opt(se)
	}
	return se
}

// SpanError is a parse error anchored at a source span, with zero or
// more secondary spans providing context (the "while parsing X" trace).
type SpanError struct {
	Err      error
	Pos, End lexer.Position
	Spans    []Span
}

func (se *SpanError) Error() string {
	if se.Err == nil {
		return FormatPos(se.Pos)
	}
	return fmt.Sprintf("%s %s", FormatPos(se.Pos), se.Err)
}

func (se *SpanError) Unwrap() error { return se.Err }

// PrettyOption configures Pretty's rendering.
type PrettyOption func(*prettyInfo)

type prettyInfo struct {
	numContext int
}

// WithNumContext sets how many lines of context surround each span.
func WithNumContext(n int) PrettyOption {
	return func(info *prettyInfo) { info.numContext = n }
}

// Pretty renders a file:line:col header, the offending source line(s), a
// caret underline, and any attached span messages, colorized per the
// context's Color.
func (se *SpanError) Pretty(ctx context.Context, opts ...PrettyOption) string {
	var info prettyInfo
	for _, opt := range opts {
		opt(&info)
	}
	color := Color(ctx)
	sources := Sources(ctx)

	var title string
	if se.Err != nil {
		title = color.Sprintf("%s: %s\n", color.Bold(color.Red("error")), color.Bold(se.Err))
	}

	src := sources.Get(se.Pos.Filename)
	if src == nil || len(se.Spans) == 0 {
		return fmt.Sprintf("%s%s", title, FormatPos(se.Pos))
	}

	var sections []string
	for _, span := range se.Spans {
		sections = append(sections, renderSpan(color, src, span, info.numContext))
	}

	header := color.Sprintf(color.Underline("%s:%d:%d:"), se.Pos.Filename, se.Pos.Line, se.Pos.Column)
	return fmt.Sprintf("%s%s\n%s", title, header, strings.Join(sections, color.Sprintf(color.Blue("\n"))))
}

func renderSpan(color aurora.Aurora, src *Source, span Span, numContext int) string {
	var (
		underline string
		msgColor  func(interface{}) aurora.Value
	)
	switch span.Type {
	case Primary:
		underline = "^"
		msgColor = color.Red
	default:
		underline = "-"
		msgColor = color.Green
	}

	line, err := src.Line(span.Start.Line)
	if err != nil {
		return err.Error()
	}

	end := span.Start.Column - 1
	if end > len(line) {
		end = len(line)
	}
	if end < 0 {
		end = 0
	}
	padding := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, line[:end])

	width := span.End.Column - span.Start.Column
	if width < 1 {
		width = 1
	}

	var lines []string
	before := span.Start.Line - numContext
	if before < 1 {
		before = 1
	}
	for n := before; n < span.Start.Line; n++ {
		ctxLine, err := src.Line(n)
		if err == nil {
			lines = append(lines, string(ctxLine))
		}
	}
	lines = append(lines, string(line))
	lines = append(lines, color.Sprintf(msgColor("%s%s"), padding, strings.Repeat(underline, width)))
	if span.Message != "" {
		lines = append(lines, color.Sprintf("%s%s", padding, msgColor(span.Message)))
	}

	maxLn := len(fmt.Sprintf("%d", span.Start.Line+numContext))
	for i := range lines {
		ln := ""
		if i <= span.Start.Line-before {
			ln = fmt.Sprintf("%d", before+i)
		}
		prefix := color.Sprintf(color.Blue("%s%s │ "), ln, strings.Repeat(" ", maxLn-len(ln)))
		lines[i] = fmt.Sprintf("%s%s", prefix, lines[i])
	}
	return strings.Join(lines, "\n")
}

// FormatPos renders a lexer.Position as "file:line:col:".
func FormatPos(pos lexer.Position) string {
	return fmt.Sprintf("%s:%d:%d:", pos.Filename, pos.Line, pos.Column)
}

// Offset advances pos by a byte/column offset and a line delta, without
// tracking intervening newlines; used for single-token nodes (like
// Ident) whose End is computed from their captured text rather than
// populated by participle.
func Offset(pos lexer.Position, offset int, line int) lexer.Position { //nolint:unparam
	pos.Offset += offset
	pos.Column += offset
	pos.Line += line
	return pos
}
