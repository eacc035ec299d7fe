package ast

import (
	participle "github.com/alecthomas/participle/v2"

	dartlexer "github.com/dartast/parser/lexer"
)

// TopLevelItem is metadata followed by one top-level declaration, tried
// in spec.md component 10's documented order: directive, typedef,
// variable, function-like, class, enum, extension.
type TopLevelItem struct {
	Mixin
	Meta      []*MetaItem    `parser:"@@*"`
	Directive *Directive     `parser:"( @@"`
	Typedef   *TypedefDecl   `parser:"| @@"`
	Variable  *VarDecl       `parser:"| @@"`
	Function  *FuncLikeDecl  `parser:"| @@"`
	Class     *ClassDecl     `parser:"| @@"`
	Enum      *EnumDecl      `parser:"| @@"`
	Extension *ExtensionDecl `parser:"| @@ )"`
}

// File is a full compilation unit: zero or more top-level items,
// trailing orphan metadata preserved rather than discarded, then
// end-of-input.
type File struct {
	Mixin
	Items  []*TopLevelItem `parser:"@@*"`
	Orphan []*MetaItem     `parser:"@@*"`
}

// TopLevelKeywords is the candidate vocabulary offered to
// diagnostic.Suggestion when a top-level item fails to match any
// alternative in TopLevelItem: an unrecognized leading word is most
// often a typo of one of these, whereas a rejected identifier (see
// Ident.Capture) has no similarly useful "nearest declaration" to
// suggest.
var TopLevelKeywords = []string{
	"class", "mixin", "enum", "extension", "typedef",
	"import", "export", "part",
}

// Parser is the compiled grammar for a complete Dart compilation unit.
var Parser = participle.MustBuild(
	&File{},
	participle.Lexer(dartlexer.Lexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(1024),
)
