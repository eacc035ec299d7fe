package ast

import (
	"fmt"

	participle "github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	dartlexer "github.com/dartast/parser/lexer"
)

// stringRegions maps every push-rule name the lexer can emit while
// inside a string literal back to the rule name that pops it: the
// string's own shape (8 variants), interpolation holes, and anything an
// interpolation hole can itself nest (brackets, comments, further
// strings) — the full set from dartlexer.Regions(), not just the
// bracket subset scanOpaque uses.
var stringRegions = dartlexer.Regions()

// StringLit captures a string literal's full source span verbatim,
// including the delimiting quotes: per spec.md component 2, escape
// sequences and interpolation holes are recognized only far enough to
// find the literal's true end, never decoded or parsed further. Its
// body text is a borrowed sub-slice of the input (see Text), not
// stored on the node itself, so the node stays a plain position/extent
// pair like every other Parseable capture in this package.
type StringLit struct {
	Mixin
}

func (s *StringLit) Parse(lex *lexer.PeekingLexer) error {
	open := lex.Peek()
	openName := tokenTypeName(open)
	closeName, ok := stringRegions[openName]
	// stringRegions also holds bracket, comment and interpolation openers;
	// only a string-shape opener starts a literal.
	_, isBracket := bracketRegions[openName]
	if !ok || isBracket || closeName == "CommentClose" || openName == "InterpStart" {
		return participle.NextMatch
	}
	s.Pos = open.Pos
	lex.Next()

	// A flat depth counter can't tell which close token closes which
	// open when strings, interpolation holes and brackets nest inside
	// one another in arbitrary combinations (`"${f([1, "${g()}"])}"`):
	// a stack of expected close names, one per currently-open region,
	// is what genuine nesting needs.
	stack := []string{closeName}
	var last lexer.Token
	for {
		tok := lex.Peek()
		if tok.EOF() {
			return fmt.Errorf("unexpected end of input inside string literal")
		}
		name := tokenTypeName(tok)
		top := stack[len(stack)-1]
		switch {
		case name == top:
			stack = stack[:len(stack)-1]
			last = tok
			lex.Next()
			if len(stack) == 0 {
				s.EndPos = endOf(last)
				return nil
			}
		case stringRegions[name] != "":
			stack = append(stack, stringRegions[name])
			last = tok
			lex.Next()
		default:
			last = tok
			lex.Next()
		}
	}
}
