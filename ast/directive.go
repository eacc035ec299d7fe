package ast

// ShowClause and HideClause are the two kinds of import/export filter
// clause; spec.md component 8 allows an arbitrary-length alternating
// sequence of either, in source order.
type ShowClause struct {
	Mixin
	Names []*Ident `parser:"'show' @@ (',' @@)*"`
}

type HideClause struct {
	Mixin
	Names []*Ident `parser:"'hide' @@ (',' @@)*"`
}

type Filter struct {
	Mixin
	Show *ShowClause `parser:"( @@"`
	Hide *HideClause `parser:"| @@ )"`
}

// ImportDecl is `import string (as identifier)? (show ids|hide ids)* ;`.
type ImportDecl struct {
	Mixin
	Path    *StringLit `parser:"'import' @@"`
	Alias   *Ident     `parser:"('as' @@)?"`
	Filters []*Filter  `parser:"@@* ';'"`
}

// ExportDecl is `export string (show ids|hide ids)* ;`.
type ExportDecl struct {
	Mixin
	Path    *StringLit `parser:"'export' @@"`
	Filters []*Filter  `parser:"@@* ';'"`
}

// PartOfDecl is `part of` followed by either a library path string or a
// dotted library name. Tried ahead of PartDecl so the literal 'of' is
// never mistaken for the start of a bare part's path.
type PartOfDecl struct {
	Mixin
	Path    *StringLit `parser:"'part' 'of' ( @@"`
	Library *Ident     `parser:"| @@ ) ';'"`
}

// PartDecl is `part string ;`.
type PartDecl struct {
	Mixin
	Path *StringLit `parser:"'part' @@ ';'"`
}

// Directive is one compilation-unit directive: import, export, part-of,
// or part, tried in that order.
type Directive struct {
	Mixin
	Import *ImportDecl `parser:"( @@"`
	Export *ExportDecl `parser:"| @@"`
	PartOf *PartOfDecl `parser:"| @@"`
	Part   *PartDecl   `parser:"| @@ )"`
}
