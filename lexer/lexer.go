// Package lexer tokenizes Dart source into the token stream consumed by
// the ast grammar. It is a stateful lexer in the same vein as
// openllb/hlb's parser/ast lexer: punctuation that opens a nested region
// (strings, comments, parenthesized/bracketed/braced regions) pushes a
// lexer state, and the matching close pops it. Everything else is a flat
// token in the Root state.
//
// Multi-character operators are deliberately NOT merged here, with one
// exception (`=>`, called out explicitly by the grammar production it
// delimits). `<` and `>` always stay single-character tokens so that
// nested generic type argument lists never have to be disambiguated from
// comparison or shift operators at the lexer level; that disambiguation
// falls out of which grammar production is active when those tokens are
// seen instead.
package lexer

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// ReservedWords is the authoritative set of identifiers that cannot be
// used as names, per the lexical primitives component. false, null,
// super, this, true and void are deliberately absent; they are
// disambiguated by context rather than reserved outright.
var ReservedWords = map[string]bool{
	"assert": true, "break": true, "case": true, "catch": true,
	"class": true, "const": true, "continue": true, "default": true,
	"do": true, "else": true, "enum": true, "extends": true,
	"finally": true, "for": true, "if": true, "in": true, "is": true,
	"new": true, "rethrow": true, "return": true, "switch": true,
	"throw": true, "try": true, "var": true, "when": true, "while": true,
	"with": true,
}

// IsReserved reports whether text is a reserved word.
func IsReserved(text string) bool {
	return ReservedWords[text]
}

type stringShape struct {
	raw    bool
	triple bool
	quote  byte // '"' or '\''
}

// stateName must be stable and unique per shape; it is also the lexer
// state name used for Push/Pop.
func (s stringShape) stateName() string {
	name := "Str"
	if s.quote == '"' {
		name += "Dbl"
	} else {
		name += "Sgl"
	}
	if s.triple {
		name += "3"
	}
	if s.raw {
		name += "R"
	}
	return name
}

func (s stringShape) startName() string { return s.stateName() + "Start" }
func (s stringShape) endName() string   { return s.stateName() + "End" }

func (s stringShape) openPattern() string {
	q := quoteMeta(s.quote)
	prefix := ""
	if s.raw {
		prefix = "r"
	}
	if s.triple {
		return prefix + q + q + q
	}
	return prefix + q
}

func (s stringShape) closePattern() string {
	q := quoteMeta(s.quote)
	if s.triple {
		return q + q + q
	}
	return q
}

func quoteMeta(b byte) string {
	if b == '"' {
		return `"`
	}
	return `'`
}

// shapes lists every (raw x triple x quote) combination, longest open
// pattern first within each quote family so raw-triple is tried before
// raw-single and triple before single.
func shapes() []stringShape {
	var out []stringShape
	for _, quote := range []byte{'"', '\''} {
		out = append(out,
			stringShape{raw: true, triple: true, quote: quote},
			stringShape{raw: true, triple: false, quote: quote},
			stringShape{raw: false, triple: true, quote: quote},
			stringShape{raw: false, triple: false, quote: quote},
		)
	}
	return out
}

func pushFor(name string) lexer.Action {
	switch name {
	case "BlockCommentStart":
		return lexer.Push("BlockComment")
	case "Paren":
		return lexer.Push("Paren")
	case "Bracket":
		return lexer.Push("Bracket")
	case "Block":
		return lexer.Push("Block")
	}
	for _, shape := range shapes() {
		if name == shape.startName() {
			return lexer.Push(shape.stateName())
		}
	}
	return nil
}

// nestedRules is the rule set reused verbatim inside Paren, Bracket,
// Block and Interpolated states: every bracket family, every string
// shape, comments, identifiers, numbers and punctuation all nest the
// same way regardless of which bracket is currently open.
func nestedRules() []lexer.Rule {
	var out []lexer.Rule
	for _, shape := range shapes() {
		out = append(out, lexer.Rule{Name: shape.startName(), Pattern: shape.openPattern(), Action: pushFor(shape.startName())})
	}
	out = append(out,
		lexer.Rule{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		lexer.Rule{Name: "LineComment", Pattern: `//[^\n]*`},
		lexer.Rule{Name: "BlockCommentStart", Pattern: `/\*`, Action: lexer.Push("BlockComment")},
		lexer.Rule{Name: "Ident", Pattern: `[A-Za-z_$][A-Za-z0-9_$.]*`},
		lexer.Rule{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
		lexer.Rule{Name: "Arrow", Pattern: `=>`},
		lexer.Rule{Name: "Paren", Pattern: `\(`, Action: lexer.Push("Paren")},
		lexer.Rule{Name: "Bracket", Pattern: `\[`, Action: lexer.Push("Bracket")},
		lexer.Rule{Name: "Block", Pattern: `\{`, Action: lexer.Push("Block")},
		lexer.Rule{Name: "At", Pattern: `@`},
		lexer.Rule{Name: "Punct", Pattern: `[<>=,;:.?!*~/%|^&+-]`},
	)
	return out
}

func stringStateRules(shape stringShape) []lexer.Rule {
	q := quoteMeta(shape.quote)
	var excl string
	switch {
	case shape.triple:
		excl = q
	case shape.raw:
		excl = q + `\n`
	default:
		excl = q + `$\\` + `\n`
	}

	rules := []lexer.Rule{
		{Name: shape.endName(), Pattern: shape.closePattern(), Action: lexer.Pop()},
	}
	if !shape.raw {
		rules = append(rules,
			lexer.Rule{Name: "Escape", Pattern: `\\(n|r|f|b|t|v|\$|'|"|\\|x[0-9a-fA-F]{2}|u[0-9a-fA-F]{4}|u\{[0-9a-fA-F]{1,6}\})`},
			lexer.Rule{Name: "InterpStart", Pattern: `\$\{`, Action: lexer.Push("Interpolated")},
			lexer.Rule{Name: "InterpIdent", Pattern: `\$[A-Za-z_][A-Za-z0-9_]*`},
		)
	}
	if shape.triple {
		// A lone or doubled quote character that isn't the closing triple
		// is ordinary text, not a terminator.
		rules = append(rules, lexer.Rule{Name: "Stray", Pattern: q + q + `?`})
	}
	rules = append(rules, lexer.Rule{Name: "Char", Pattern: `[^` + excl + `]+`})
	return rules
}

// Definition builds the stateful token definition for Dart source.
func Definition() lexer.Definition {
	rules := lexer.Rules{
		"Root": nestedRules(),
		"BlockComment": {
			{Name: "CommentOpen", Pattern: `/\*`, Action: lexer.Push("BlockComment")},
			{Name: "CommentClose", Pattern: `\*/`, Action: lexer.Pop()},
			{Name: "CommentRun", Pattern: `[^/*]+`},
			{Name: "CommentChar", Pattern: `.`},
		},
		"Paren":        append([]lexer.Rule{{Name: "ParenEnd", Pattern: `\)`, Action: lexer.Pop()}}, nestedRules()...),
		"Bracket":      append([]lexer.Rule{{Name: "BracketEnd", Pattern: `\]`, Action: lexer.Pop()}}, nestedRules()...),
		"Block":        append([]lexer.Rule{{Name: "BlockEnd", Pattern: `\}`, Action: lexer.Pop()}}, nestedRules()...),
		"Interpolated": append([]lexer.Rule{{Name: "InterpEnd", Pattern: `\}`, Action: lexer.Pop()}}, nestedRules()...),
	}

	for _, shape := range shapes() {
		rules[shape.stateName()] = stringStateRules(shape)
	}

	return lexer.MustStateful(rules)
}

// Lexer is the stateful token definition shared by the ast grammar.
var Lexer = Definition()

// Regions maps every push-rule's token name to the token name that pops
// it back: the three bracket families, block comments, interpolation
// holes, and all eight string-literal shapes. The ast package's opaque
// scanners use this as their single source of truth for which tokens
// nest, rather than re-deriving lexer naming conventions themselves.
func Regions() map[string]string {
	regions := map[string]string{
		"Paren":             "ParenEnd",
		"Bracket":           "BracketEnd",
		"Block":             "BlockEnd",
		"BlockCommentStart": "CommentClose",
		"CommentOpen":       "CommentClose",
		"InterpStart":       "InterpEnd",
	}
	for _, shape := range shapes() {
		regions[shape.startName()] = shape.endName()
	}
	return regions
}
