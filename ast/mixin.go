package ast

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/dartast/parser/diagnostic"
)

// Node is implemented by every node produced by the grammar.
type Node interface {
	// Position returns the position of the first character belonging to
	// the node.
	Position() lexer.Position

	// End returns the position of the first character immediately after
	// the node.
	End() lexer.Position

	// WithError decorates err with this node's span.
	WithError(err error, opts ...diagnostic.Option) error

	// Spanf builds a span annotation rooted at this node.
	Spanf(t diagnostic.Type, format string, a ...interface{}) diagnostic.Option
}

// Mixin is embedded by every AST node. It carries the node's source span
// and implements the plumbing of Node so individual node types only need
// to declare their grammar fields.
type Mixin struct {
	Pos    lexer.Position
	EndPos lexer.Position
}

func (m Mixin) Position() lexer.Position { return m.Pos }
func (m Mixin) End() lexer.Position      { return m.EndPos }

func (m Mixin) WithError(err error, opts ...diagnostic.Option) error {
	return diagnostic.WithError(err, m.Pos, m.EndPos, opts...)
}

func (m Mixin) Spanf(t diagnostic.Type, format string, a ...interface{}) diagnostic.Option {
	return diagnostic.Spanf(t, m.Position(), m.End(), format, a...)
}

func (m Mixin) String() string {
	return fmt.Sprintf("%s:%d:%d", m.Pos.Filename, m.Pos.Line, m.Pos.Column)
}

// Text returns n's borrowed sub-slice of source: the AST never copies
// identifier or literal text out of the input it was parsed from, so
// any node's span can be sliced back out of the same buffer on demand.
func Text(source string, n Node) string {
	return source[n.Position().Offset:n.End().Offset]
}
