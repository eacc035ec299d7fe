package ast

import (
	"fmt"

	plexer "github.com/alecthomas/participle/v2/lexer"

	"github.com/dartast/parser/diagnostic"
	dartlexer "github.com/dartast/parser/lexer"
)

// Ident is a dotted identifier token (Foo, _private, this.field,
// super.field, Foo.bar). Reserved words are rejected here rather than at
// the lexer: rejection must be a recoverable failure (try the next
// alternative), not a lex-level error, and Capture errors backtrack the
// same way a plain token mismatch would.
type Ident struct {
	Mixin
	Text string
}

func NewIdent(name string) *Ident {
	return &Ident{Text: name}
}

// Capture is invoked by participle directly against the raw Ident token,
// mirroring the single-token NumericLit.Capture pattern used for number
// literals in the combinator this grammar is patterned on.
func (i *Ident) Capture(tokens []string) error {
	text := tokens[0]
	if dartlexer.IsReserved(text) {
		return fmt.Errorf("%q is a reserved word and cannot be used as an identifier", text)
	}
	i.Text = text
	return nil
}

func (i *Ident) Position() plexer.Position { return i.Pos }
func (i *Ident) End() plexer.Position      { return diagnostic.Offset(i.Pos, len(i.Text), 0) }
