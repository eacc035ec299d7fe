package ast

import (
	"fmt"

	participle "github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// FuncBody is an optional asynchrony modifier followed by either a
// brace-delimited block or `=> expr ;`. Hand-rolled because `async*` and
// `sync*` require the `*` to be immediately adjacent to the keyword with
// no intervening whitespace or comment, the same adjacency discipline
// OperatorSymbol and Annotation already need.
type FuncBody struct {
	Mixin
	Async string
	Block *Scope
	Arrow *ArrowBody
}

func (b *FuncBody) Parse(lex *lexer.PeekingLexer) error {
	first := lex.Peek()
	if first.EOF() {
		return participle.NextMatch
	}
	b.Pos = first.Pos

	switch first.Value {
	case "async":
		lex.Next()
		star := lex.Peek()
		if star.Value == "*" && adjacent(first, star) {
			lex.Next()
			b.Async = "async*"
		} else {
			b.Async = "async"
		}
	case "sync":
		save := lex.Cursor
		lex.Next()
		star := lex.Peek()
		if star.Value == "*" && adjacent(first, star) {
			lex.Next()
			b.Async = "sync*"
		} else {
			// A bare 'sync' is not a recognized modifier; back off and
			// let the block/arrow check below see 'sync' as whatever it
			// actually is (almost certainly a syntax error either way).
			lex.Cursor = save
		}
	}

	tok := lex.Peek()
	if tok.Value == "=>" {
		lex.Next()
		arrow := &ArrowBody{}
		if err := arrow.Parse(lex); err != nil {
			return err
		}
		semi := lex.Peek()
		if semi.Value != ";" {
			return fmt.Errorf("expected ';' after '=>' function body")
		}
		lex.Next()
		b.Arrow = arrow
		b.EndPos = endOf(semi)
		return nil
	}

	block := &Scope{}
	if err := block.Parse(lex); err != nil {
		return err
	}
	b.Block = block
	b.EndPos = block.EndPos
	return nil
}

// ArrowBody classifies the expression captured after `=>`: a bare
// identifier or a bare string literal each get their own node, anything
// else is kept as a verbatim opaque slice. This is the only expression
// analysis the core performs, per spec.md component 7.
type ArrowBody struct {
	Mixin
	Ident    *Ident
	String   *StringLit
	Verbatim *ExprSlice
}

func (a *ArrowBody) Parse(lex *lexer.PeekingLexer) error {
	start := lex.Peek()
	if start.EOF() {
		return participle.NextMatch
	}
	a.Pos = start.Pos

	if tokenTypeName(start) == "Ident" {
		save := lex.Cursor
		lex.Next()
		if lex.Peek().Value == ";" {
			ident := &Ident{}
			if err := ident.Capture([]string{start.Value}); err == nil {
				ident.Pos = start.Pos
				ident.EndPos = endOf(start)
				a.Ident = ident
				a.EndPos = ident.EndPos
				return nil
			}
		}
		lex.Cursor = save
	}

	if _, ok := stringRegions[tokenTypeName(start)]; ok {
		save := lex.Cursor
		lit := &StringLit{}
		if err := lit.Parse(lex); err == nil && lex.Peek().Value == ";" {
			a.String = lit
			a.EndPos = lit.EndPos
			return nil
		}
		lex.Cursor = save
	}

	verbatim := &ExprSlice{}
	if err := verbatim.Parse(lex); err != nil {
		return err
	}
	a.Verbatim = verbatim
	a.EndPos = verbatim.EndPos
	return nil
}

// funcTail is the part plain functions, setters and operators share once
// their name (or operator symbol) is known: an optional type-parameter
// list, the parameter list, and a body or terminating semicolon.
type funcTail struct {
	Mixin
	TypeParams *TypeParamList `parser:"@@?"`
	Params     *ParamList     `parser:"@@"`
	Body       *FuncBody      `parser:"( @@"`
	Semicolon  bool           `parser:"| @';' )"`
}

// getterTail is funcTail without the parameter list a getter never has.
type getterTail struct {
	Mixin
	TypeParams *TypeParamList `parser:"@@?"`
	Body       *FuncBody      `parser:"( @@"`
	Semicolon  bool           `parser:"| @';' )"`
}

// A leading return type and the declaration's own introducing keyword
// (`get`, `set`, `operator`) are both just identifier-shaped tokens to
// the lexer, so an optional `Type` field ahead of a mandatory keyword
// literal would, for a bare declaration with no return type, greedily
// swallow the keyword itself as a type name and then fail to find it
// again — the same ambiguity FunctionType resolves for the `Function`
// keyword. Getter/Setter/Operator all split into a bare alternative
// (tried first) and a prefixed one, exactly like FunctionType.

type GetterDecl struct {
	Mixin
	Bare     *bareGetter     `parser:"( @@"`
	Prefixed *prefixedGetter `parser:"| @@ )"`
}

type bareGetter struct {
	Mixin
	Keyword string `parser:"@'get'"`
	Name    *Ident `parser:"@@"`
	Tail    getterTail `parser:"@@"`
}

type prefixedGetter struct {
	Mixin
	Return  *Type  `parser:"@@"`
	Keyword string `parser:"@'get'"`
	Name    *Ident `parser:"@@"`
	Tail    getterTail `parser:"@@"`
}

func (g *GetterDecl) Return() *Type {
	if g.Prefixed != nil {
		return g.Prefixed.Return
	}
	return nil
}

func (g *GetterDecl) DeclName() *Ident {
	if g.Bare != nil {
		return g.Bare.Name
	}
	return g.Prefixed.Name
}

func (g *GetterDecl) Tail() *getterTail {
	if g.Bare != nil {
		return &g.Bare.Tail
	}
	return &g.Prefixed.Tail
}

type SetterDecl struct {
	Mixin
	Bare     *bareSetter     `parser:"( @@"`
	Prefixed *prefixedSetter `parser:"| @@ )"`
}

type bareSetter struct {
	Mixin
	Keyword string `parser:"@'set'"`
	Name    *Ident `parser:"@@"`
	Tail    funcTail `parser:"@@"`
}

type prefixedSetter struct {
	Mixin
	Return  *Type  `parser:"@@"`
	Keyword string `parser:"@'set'"`
	Name    *Ident `parser:"@@"`
	Tail    funcTail `parser:"@@"`
}

func (s *SetterDecl) Return() *Type {
	if s.Prefixed != nil {
		return s.Prefixed.Return
	}
	return nil
}

func (s *SetterDecl) DeclName() *Ident {
	if s.Bare != nil {
		return s.Bare.Name
	}
	return s.Prefixed.Name
}

func (s *SetterDecl) Tail() *funcTail {
	if s.Bare != nil {
		return &s.Bare.Tail
	}
	return &s.Prefixed.Tail
}

type OperatorFuncDecl struct {
	Mixin
	Bare     *bareOperator     `parser:"( @@"`
	Prefixed *prefixedOperator `parser:"| @@ )"`
}

type bareOperator struct {
	Mixin
	Keyword string          `parser:"@'operator'"`
	Symbol  *OperatorSymbol `parser:"@@"`
	Tail    funcTail `parser:"@@"`
}

type prefixedOperator struct {
	Mixin
	Return  *Type           `parser:"@@"`
	Keyword string          `parser:"@'operator'"`
	Symbol  *OperatorSymbol `parser:"@@"`
	Tail    funcTail `parser:"@@"`
}

func (o *OperatorFuncDecl) Return() *Type {
	if o.Prefixed != nil {
		return o.Prefixed.Return
	}
	return nil
}

func (o *OperatorFuncDecl) Op() *OperatorSymbol {
	if o.Bare != nil {
		return o.Bare.Symbol
	}
	return o.Prefixed.Symbol
}

func (o *OperatorFuncDecl) Tail() *funcTail {
	if o.Bare != nil {
		return &o.Bare.Tail
	}
	return &o.Prefixed.Tail
}

// PlainFuncDecl never collides with the get/set/operator keywords the
// way they collide with each other: its return type is mandatory, so
// there is no bare alternative to disambiguate against.
type PlainFuncDecl struct {
	Mixin
	ModifierToks []*funcModifierTok `parser:"@@*"`
	Return       *Type              `parser:"@@"`
	Name         *Ident             `parser:"@@"`
	Tail         funcTail `parser:"@@"`
}

func (f *PlainFuncDecl) Modifiers() ModifierSet[FuncModifier] {
	return funcModifierSetOf(f.ModifierToks)
}

// FuncLikeDecl tries, in order, user-defined operator, plain function,
// getter, setter — spec.md component 7's stated priority. A bare
// `get`/`set`-shaped declaration whose token run also happens to satisfy
// PlainFuncDecl's shape (a leading identifier read as a return type,
// immediately followed by a parameter list) resolves as a plain
// function; this is the spec's own accepted ordering, not an oversight.
type FuncLikeDecl struct {
	Mixin
	Operator *OperatorFuncDecl `parser:"( @@"`
	Function *PlainFuncDecl    `parser:"| @@"`
	Getter   *GetterDecl       `parser:"| @@"`
	Setter   *SetterDecl       `parser:"| @@ )"`
}

// typedVar and untypedVar are VarDecl's two shapes: "Type Name" and
// "Name" alone. Unlike Getter/Setter/Operator there is no keyword to
// collide with here, so a plain two-branch alternation is sufficient.
type typedVar struct {
	Mixin
	Type *Type  `parser:"@@"`
	Name *Ident `parser:"@@"`
}

type untypedVar struct {
	Mixin
	Name *Ident `parser:"@@"`
}

// VarDecl is a top-level or member variable declaration: a modifier
// set, optional `var`, a typed or bare name, an optional initializer,
// terminating `;`.
type VarDecl struct {
	Mixin
	ModifierToks []*variableModifierTok `parser:"@@*"`
	VarKeyword   bool                   `parser:"@'var'?"`
	Typed        *typedVar              `parser:"( @@"`
	Untyped      *untypedVar            `parser:"| @@ )"`
	Initializer  *ExprSlice             `parser:"('=' @@)? ';'"`
}

func (v *VarDecl) Modifiers() ModifierSet[VariableModifier] {
	return variableModifierSetOf(v.ModifierToks)
}

func (v *VarDecl) VarType() *Type {
	if v.Typed != nil {
		return v.Typed.Type
	}
	return nil
}

func (v *VarDecl) VarName() *Ident {
	if v.Typed != nil {
		return v.Typed.Name
	}
	return v.Untyped.Name
}

// ConstructorDecl is distinguished from a function by having no
// separate return type at all: its name (the class name, optionally
// dotted, e.g. `Foo.named`) is itself the first token, so trying this
// production ahead of VarDecl/FuncLikeDecl in ClassMember naturally
// resolves the ambiguity — a real field or method always has a type (or
// `var`) before its name, a constructor never does.
type ConstructorDecl struct {
	Mixin
	ModifierToks []*constructorModifierTok `parser:"@@?"`
	Name         *Ident                    `parser:"@@"`
	Params       *ParamList                `parser:"@@"`
	Initializers *InitializerList          `parser:"(':' @@)?"`
	Body         *FuncBody                 `parser:"( @@"`
	Semicolon    bool                      `parser:"| @';' )"`
}

func (c *ConstructorDecl) Modifiers() ModifierSet[ConstructorModifier] {
	return constructorModifierSetOf(c.ModifierToks)
}

// ClassMember is metadata followed by one of constructor, field,
// function-like — spec.md component 7's stated member order.
type ClassMember struct {
	Mixin
	Meta        []*MetaItem      `parser:"@@*"`
	Constructor *ConstructorDecl `parser:"( @@"`
	Field       *VarDecl         `parser:"| @@"`
	Method      *FuncLikeDecl    `parser:"| @@ )"`
}

// ClassBody is the brace-delimited member list, with any trailing
// metadata that precedes no member preserved as Orphan rather than
// discarded (SPEC_FULL.md §9 Open Question decision).
type ClassBody struct {
	Mixin
	Members []*ClassMember `parser:"'{' @@*"`
	Orphan  []*MetaItem    `parser:"@@* '}'"`
}

type ExtendsClause struct {
	Mixin
	Type *NonFunctionType `parser:"'extends' @@"`
}

type WithClause struct {
	Mixin
	Types []*NonFunctionType `parser:"'with' @@ (',' @@)*"`
}

type ImplementsClause struct {
	Mixin
	Types []*NonFunctionType `parser:"'implements' @@ (',' @@)*"`
}

type OnClause struct {
	Mixin
	Types []*NonFunctionType `parser:"'on' @@ (',' @@)*"`
}

// ClassDecl covers both `class` and `mixin` declarations: the keyword
// itself is one of the bits in its modifier set (see
// original_source/dart-parser's ClassModifier, which packs Class/Mixin
// alongside Abstract/Base/Final/Interface/Sealed rather than treating
// them as a separate discriminant).
type ClassDecl struct {
	Mixin
	ModifierToks []*classModifierTok `parser:"@@+"`
	Name         *Ident              `parser:"@@"`
	TypeParams   *TypeParamList      `parser:"@@?"`
	Extends      *ExtendsClause      `parser:"@@?"`
	With         *WithClause         `parser:"@@?"`
	Implements   *ImplementsClause   `parser:"@@?"`
	On           *OnClause           `parser:"@@?"`
	Body         *ClassBody          `parser:"@@"`
}

func (c *ClassDecl) Modifiers() ModifierSet[ClassModifier] {
	return classModifierSetOf(c.ModifierToks)
}

// EnumValue is a metadata-wrapped identifier optionally followed by an
// argument list, syntax identical to a function call's.
type EnumValue struct {
	Mixin
	Meta []*MetaItem   `parser:"@@*"`
	Name *Ident        `parser:"@@"`
	Args *ArgumentList `parser:"@@?"`
}

// EnumBody is `{ values (, values)* [,]? (; members)? }`.
type EnumBody struct {
	Mixin
	Values  []*EnumValue   `parser:"'{' @@ (',' @@)* ','?"`
	Members []*ClassMember `parser:"(';' @@*"`
	Orphan  []*MetaItem    `parser:"@@*)? '}'"`
}

type EnumDecl struct {
	Mixin
	Name       *Ident            `parser:"'enum' @@"`
	Implements *ImplementsClause `parser:"@@?"`
	Body       *EnumBody         `parser:"@@"`
}

// ExtensionDecl's body only admits function-likes and static fields,
// per spec.md component 7; the grammar still accepts the same
// ClassMember shape and leaves that restriction to consumers, matching
// the "accept any sequence, validate downstream" discipline already
// used for modifier sets.
type ExtensionDecl struct {
	Mixin
	Name       *Ident         `parser:"'extension' @@?"`
	TypeParams *TypeParamList `parser:"@@?"`
	On         *Type          `parser:"'on' @@"`
	Body       *ClassBody     `parser:"@@"`
}

type TypedefDecl struct {
	Mixin
	Name       *Ident         `parser:"'typedef' @@"`
	TypeParams *TypeParamList `parser:"@@?"`
	Type       *Type          `parser:"'=' @@ ';'"`
}
