package ast

import (
	"fmt"

	participle "github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	dartlexer "github.com/dartast/parser/lexer"
)

// pairFamily reports the token names participle's lexer emits for an
// open/close bracket pair, so a scanner can tell "this token reopens my
// own nesting" from "this token belongs to some other region entirely"
// without ever needing to know what the lexer's internal state stack
// looks like: the stack already guarantees every token it emits nests
// correctly, so counting only the open/close pair we care about is
// enough.
type pairFamily struct{ open, close string }

var (
	parenFamily   = pairFamily{"Paren", "ParenEnd"}
	bracketFamily = pairFamily{"Bracket", "BracketEnd"}
	blockFamily   = pairFamily{"Block", "BlockEnd"}
)

// bracketRegions is the subset of dartlexer.Regions() scanOpaque cares
// about: the three bracket families only, not strings/comments/
// interpolation (those are handled by StringLit's own region scanner
// instead, since an opaque Scope/ExprSlice scan must still stop at a
// bracket that belongs to its enclosing construct, but never needs to
// peer inside a string to do so).
var bracketRegions = map[string]pairFamily{
	parenFamily.open:   parenFamily,
	parenFamily.close:  parenFamily,
	bracketFamily.open:  bracketFamily,
	bracketFamily.close: bracketFamily,
	blockFamily.open:   blockFamily,
	blockFamily.close:  blockFamily,
}

func familyFor(tok lexer.Token) (pairFamily, bool) {
	fam, ok := bracketRegions[tokenTypeName(tok)]
	return fam, ok
}

// tokenTypeNames maps a rule's numeric token type back to its symbolic
// name, built once from the shared lexer definition's Symbols table.
var tokenTypeNames = func() map[lexer.TokenType]string {
	names := make(map[lexer.TokenType]string)
	for name, rtype := range dartlexer.Lexer.Symbols() {
		names[rtype] = name
	}
	return names
}()

func tokenTypeName(tok lexer.Token) string {
	return tokenTypeNames[tok.Type]
}

func endOf(tok lexer.Token) lexer.Position {
	pos := tok.Pos
	pos.Offset += len(tok.Value)
	pos.Column += len(tok.Value)
	return pos
}

// scanOpaque walks tokens from the current cursor, tracking nesting
// depth across the three bracket families plus a best-effort angle
// bracket heuristic (so a `<T>` type-argument list inside an expression
// doesn't make a top-level comma inside it look like a terminator), and
// stops as soon as stop reports true at depth 0. It never special-cases
// strings or comments: those regions push and pop the lexer's own state
// stack, their text never lexes as a Paren/Bracket/Block token, and the
// bracket tokens an interpolation hole does produce come in matched
// pairs, so they can't desynchronize this counter.
func scanOpaque(lex *lexer.PeekingLexer, stop func(tok lexer.Token) bool) (last lexer.Token, err error) {
	depth := 0
	angle := 0
	for {
		tok := lex.Peek()
		if tok.EOF() {
			return last, fmt.Errorf("unexpected end of input")
		}
		if depth == 0 && angle == 0 && stop(tok) {
			return last, nil
		}
		if fam, ok := familyFor(tok); ok {
			if tokenTypeName(tok) == fam.open {
				depth++
			} else if depth == 0 {
				// A close token we never opened belongs to whatever
				// encloses this scan (the caller's own bracket, or
				// parameter group); stop here without consuming it.
				return last, nil
			} else {
				depth--
			}
		}
		if depth == 0 {
			switch tok.Value {
			case "<":
				angle++
			case ">":
				if angle > 0 {
					angle--
				}
			}
		}
		last = tok
		lex.Next()
	}
}

// Scope captures a bracket-delimited opaque region (a function block
// body) verbatim, without parsing its contents: the spec only needs to
// know where the region ends, not what is inside it. Class, enum and
// extension bodies are not Scopes; ClassBody and EnumBody parse them
// member by member.
type Scope struct {
	Mixin
}

func (s *Scope) Parse(lex *lexer.PeekingLexer) error {
	open := lex.Peek()
	var fam pairFamily
	switch open.Value {
	case "{":
		fam = blockFamily
	case "(":
		fam = parenFamily
	case "[":
		fam = bracketFamily
	default:
		return participle.NextMatch
	}
	s.Pos = open.Pos
	lex.Next()

	last, err := scanOpaque(lex, func(tok lexer.Token) bool {
		f, ok := familyFor(tok)
		return ok && f == fam && tokenTypeName(tok) == fam.close
	})
	if err != nil {
		return fmt.Errorf("%w while scanning %s...%s", err, open.Value, closeFor(open.Value))
	}
	closeTok := lex.Peek()
	if closeTok.EOF() {
		return fmt.Errorf("unexpected end of input, expected %q", closeFor(open.Value))
	}
	lex.Next()
	s.EndPos = endOf(closeTok)
	_ = last
	return nil
}

func closeFor(open string) string {
	switch open {
	case "{":
		return "}"
	case "(":
		return ")"
	case "[":
		return "]"
	}
	return ""
}

// ExprSlice captures an opaque expression span, stopping at the first
// top-level comma or semicolon without consuming it: default-value
// initializers and the `=> expr` function body form both only need the
// span, not a parsed expression tree. An expression never begins with
// `=`, so a leading `=` is no match: that keeps `operator ==` from being
// read as a field named `operator` with an `= ...` initializer.
type ExprSlice struct {
	Mixin
}

func (e *ExprSlice) Parse(lex *lexer.PeekingLexer) error {
	start := lex.Peek()
	if start.EOF() || start.Value == "=" {
		return participle.NextMatch
	}
	e.Pos = start.Pos
	last, err := scanOpaque(lex, func(tok lexer.Token) bool {
		return tok.Value == "," || tok.Value == ";"
	})
	if err != nil {
		return err
	}
	if last.Value == "" {
		return participle.NextMatch
	}
	e.EndPos = endOf(last)
	return nil
}

// InitializerList captures a constructor's `: expr, expr, ...` clause
// opaquely, from just after the colon up to (not including) the body or
// terminating semicolon.
type InitializerList struct {
	Mixin
}

func (n *InitializerList) Parse(lex *lexer.PeekingLexer) error {
	start := lex.Peek()
	if start.EOF() {
		return participle.NextMatch
	}
	n.Pos = start.Pos
	last, err := scanOpaque(lex, func(tok lexer.Token) bool {
		return tok.Value == "{" || tok.Value == ";"
	})
	if err != nil {
		return err
	}
	if last.Value == "" {
		return participle.NextMatch
	}
	n.EndPos = endOf(last)
	return nil
}

// operatorSymbols is the closed set accepted by a user-defined operator
// declaration, ordered longest-match first within each starting
// character so <= is tried before <, << before <, and so on. `[]` and
// `[]=` are not in the list: OperatorSymbol.Parse matches them itself,
// extending `[]` to `[]=` when an adjacent `=` follows.
var operatorSymbols = []string{
	"<<<", "<=", "<<", ">=", ">>", "~/", "==",
	"<", ">", "-", "+", "/", "*", "%", "|", "^", "&", "~",
}

// OperatorSymbol matches exactly the operator symbol vocabulary, built
// out of single-character punctuation tokens (plus the bracket pair for
// `[]`/`[]=`) joined only when adjacent in the source, so it never
// swallows a token that belongs to the next production.
type OperatorSymbol struct {
	Mixin
	Symbol string
}

func (o *OperatorSymbol) Parse(lex *lexer.PeekingLexer) error {
	first := lex.Peek()
	if first.EOF() {
		return participle.NextMatch
	}
	o.Pos = first.Pos

	if first.Value == "[" {
		save := lex.Cursor
		lex.Next()
		second := lex.Peek()
		if second.Value == "]" && adjacent(first, second) {
			lex.Next()
			o.Symbol = "[]"
			last := second
			third := lex.Peek()
			if third.Value == "=" && adjacent(second, third) {
				lex.Next()
				o.Symbol = "[]="
				last = third
			}
			o.EndPos = endOf(last)
			return nil
		}
		lex.Cursor = save
		return participle.NextMatch
	}

	for _, sym := range operatorSymbols {
		if last, ok := matchRun(lex, first, sym); ok {
			o.Symbol = sym
			o.EndPos = endOf(last)
			return nil
		}
	}
	return participle.NextMatch
}

// matchRun reports whether the next len(sym) single-character tokens,
// each immediately adjacent to the last, spell out sym exactly; on
// success the cursor is advanced past them and the last token
// returned, on failure the cursor is restored.
func matchRun(lex *lexer.PeekingLexer, first lexer.Token, sym string) (lexer.Token, bool) {
	save := lex.Cursor
	prev := first
	var last lexer.Token
	for i := 0; i < len(sym); i++ {
		tok := lex.Peek()
		if tok.Value != string(sym[i]) {
			lex.Cursor = save
			return lexer.Token{}, false
		}
		if i > 0 && !adjacent(prev, tok) {
			lex.Cursor = save
			return lexer.Token{}, false
		}
		lex.Next()
		prev = tok
		last = tok
	}
	return last, true
}

// adjacent reports whether b immediately follows a in the source, with
// no elided whitespace or comment between them.
func adjacent(a, b lexer.Token) bool {
	return a.Pos.Offset+len(a.Value) == b.Pos.Offset
}
