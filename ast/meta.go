package ast

import (
	"fmt"

	participle "github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Comment is a single line or (possibly nested) block comment, captured
// as one node regardless of how many levels of `/* ... */` nesting it
// contains: the lexer's own state stack already balances the nesting,
// so this Parseable only has to count CommentOpen/CommentClose pairs
// to know when the outermost comment has closed, the same technique
// Scope uses for brackets.
type Comment struct {
	Mixin
}

func (c *Comment) Parse(lex *lexer.PeekingLexer) error {
	first := lex.Peek()
	switch tokenTypeName(first) {
	case "LineComment":
		c.Pos = first.Pos
		c.EndPos = endOf(first)
		lex.Next()
		return nil
	case "BlockCommentStart":
		c.Pos = first.Pos
		lex.Next()
		depth := 1
		var last lexer.Token
		for {
			tok := lex.Peek()
			if tok.EOF() {
				return fmt.Errorf("unexpected end of input inside block comment")
			}
			switch tokenTypeName(tok) {
			case "CommentOpen":
				depth++
			case "CommentClose":
				depth--
			}
			last = tok
			lex.Next()
			if depth == 0 {
				c.EndPos = endOf(last)
				return nil
			}
		}
	default:
		return participle.NextMatch
	}
}

// Argument is one entry of a function-call-shaped argument list: an
// optional `name:` prefix (named argument) followed by an opaque
// expression span.
type Argument struct {
	Mixin
	Name  *Ident
	Value *ExprSlice
}

func (a *Argument) Parse(lex *lexer.PeekingLexer) error {
	start := lex.Peek()
	if start.EOF() {
		return participle.NextMatch
	}
	a.Pos = start.Pos

	save := lex.Cursor
	nameTok := lex.Peek()
	if tokenTypeName(nameTok) == "Ident" {
		lex.Next()
		colon := lex.Peek()
		if colon.Value == ":" {
			lex.Next()
			ident := &Ident{}
			if err := ident.Capture([]string{nameTok.Value}); err != nil {
				lex.Cursor = save
			} else {
				ident.Pos = nameTok.Pos
				ident.EndPos = endOf(nameTok)
				a.Name = ident
			}
		} else {
			lex.Cursor = save
		}
	}

	val := &ExprSlice{}
	if err := val.Parse(lex); err != nil {
		return err
	}
	a.Value = val
	a.EndPos = val.EndPos
	return nil
}

// ArgumentList is a parenthesized, comma-separated list of Arguments,
// shared verbatim by annotation invocations and enum-value argument
// lists, which spec.md describes as syntactically identical.
type ArgumentList struct {
	Mixin
	Args []*Argument
}

func (al *ArgumentList) Parse(lex *lexer.PeekingLexer) error {
	open := lex.Peek()
	if open.Value != "(" {
		return participle.NextMatch
	}
	al.Pos = open.Pos
	lex.Next()

	for {
		tok := lex.Peek()
		if tok.EOF() {
			return fmt.Errorf("unexpected end of input in argument list")
		}
		if tok.Value == ")" {
			al.EndPos = endOf(tok)
			lex.Next()
			return nil
		}
		if tok.Value == "," {
			lex.Next()
			continue
		}
		arg := &Argument{}
		if err := arg.Parse(lex); err != nil {
			return err
		}
		al.Args = append(al.Args, arg)
	}
}

// Annotation is `@name` or `@name(args)`. The argument list is only
// attached when `(` immediately follows the name with no whitespace or
// comment between them — spec.md component 9's adjacency rule — which
// is why Annotation is hand-rolled rather than struct-tag driven: the
// adjacency check needs the identifier token it just consumed, which a
// later sibling field parsed through participle's own dispatch would
// have no way to see.
type Annotation struct {
	Mixin
	Name *Ident
	Args *ArgumentList
}

func (a *Annotation) Parse(lex *lexer.PeekingLexer) error {
	at := lex.Peek()
	if at.Value != "@" {
		return participle.NextMatch
	}
	a.Pos = at.Pos
	lex.Next()

	nameTok := lex.Peek()
	if tokenTypeName(nameTok) != "Ident" {
		return fmt.Errorf("expected an identifier after '@'")
	}
	ident := &Ident{}
	if err := ident.Capture([]string{nameTok.Value}); err != nil {
		return err
	}
	ident.Pos = nameTok.Pos
	ident.EndPos = endOf(nameTok)
	a.Name = ident
	a.EndPos = ident.EndPos
	lex.Next()

	paren := lex.Peek()
	if paren.Value == "(" && adjacent(nameTok, paren) {
		args := &ArgumentList{}
		if err := args.Parse(lex); err != nil {
			return err
		}
		a.Args = args
		a.EndPos = args.EndPos
	}
	return nil
}

// MetaItem is one element of a metadata sequence: either a comment or
// an annotation, in source order.
type MetaItem struct {
	Mixin
	Comment    *Comment    `parser:"( @@"`
	Annotation *Annotation `parser:"| @@ )"`
}
