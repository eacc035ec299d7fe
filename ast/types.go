package ast

// Type is a non-function type, a function type, or a tuple type.
// Alternatives are tried tuple first (unambiguously introduced by `(`),
// then function (a function type always starts with an optional
// NonFunctionType prefix followed by the `Function` keyword), then
// plain non-function type; this ordering mirrors spec.md's own
// disambiguation order rather than being arbitrary.
type Type struct {
	Mixin
	Tuple    *TupleType       `parser:"( @@"`
	Function *FunctionType    `parser:"| @@"`
	Plain    *NonFunctionType `parser:"| @@ )"`
}

// NonFunctionType is a named type with an optional type-argument list
// and an optional nullability marker.
type NonFunctionType struct {
	Mixin
	Name     *Ident    `parser:"@@"`
	Args     *TypeArgs `parser:"@@?"`
	Nullable bool      `parser:"@'?'?"`
}

// TypeArgs is a `< type (, type)* >` argument list.
type TypeArgs struct {
	Mixin
	Types []*Type `parser:"'<' @@ (',' @@)* '>'"`
}

// FunctionType is an optional return-type prefix followed by one or
// more `Function` clauses. Multiple clauses nest right-associatively:
// `R Function() Function()` is a Func returning a Func returning R, so
// the clause list is folded from the right when consumers need a tree
// rather than a flat list (see Nest).
//
// The bare-vs-prefixed split (rather than a single optional prefix
// field) exists because `Function` is an ordinary, non-reserved
// identifier: a naive `Prefix *NonFunctionType `@@?`` would greedily
// capture a leading bare `Function` as the prefix's name, leaving
// nothing left for the required clause and rejecting `Function()`
// outright. Trying the bare shape first, which matches the `Function`
// keyword directly as a clause rather than through NonFunctionType's
// identifier capture, resolves the ambiguity the same way the spec
// resolves `<` against type-argument lists: by trying the unambiguous
// reading first.
type FunctionType struct {
	Mixin
	Bare     *bareFunctionType     `parser:"( @@"`
	Prefixed *prefixedFunctionType `parser:"| @@ )"`
}

type bareFunctionType struct {
	Mixin
	Clauses []*FunctionClause `parser:"@@+"`
}

type prefixedFunctionType struct {
	Mixin
	Prefix  *NonFunctionType  `parser:"@@"`
	Clauses []*FunctionClause `parser:"@@+"`
}

// Prefix returns the function type's return-type prefix, or nil if the
// type was declared without one.
func (ft *FunctionType) Prefix() *NonFunctionType {
	if ft.Prefixed != nil {
		return ft.Prefixed.Prefix
	}
	return nil
}

// Clauses returns the flat, source-order list of Function clauses.
func (ft *FunctionType) Clauses() []*FunctionClause {
	if ft.Bare != nil {
		return ft.Bare.Clauses
	}
	return ft.Prefixed.Clauses
}

// Nest folds the flat clause list into a right-nested tree: the
// innermost clause wraps Prefix (or dynamic, if Prefix is absent), and
// each clause to its left wraps the previous result.
func (ft *FunctionType) Nest() *FunctionClause {
	clauses := ft.Clauses()
	if len(clauses) == 0 {
		return nil
	}
	for i := len(clauses) - 2; i >= 0; i-- {
		clauses[i].Returns = clauses[i+1]
	}
	return clauses[0]
}

// FunctionClause is one `Function(...)` segment of a function type.
type FunctionClause struct {
	Mixin
	Keyword    string          `parser:"@'Function'"`
	TypeParams *TypeParamList  `parser:"@@?"`
	Params     *ParamList      `parser:"@@"`
	Nullable   bool            `parser:"@'?'?"`
	Returns    *FunctionClause // set by FunctionType.Nest, not parsed
}

// TypeParamList is a `<T, U extends Foo>` declaration-site type
// parameter list.
type TypeParamList struct {
	Mixin
	Params []*TypeParam `parser:"'<' @@ (',' @@)* '>'"`
}

// TypeParam is one entry in a TypeParamList: a name with an optional
// `extends` bound.
type TypeParam struct {
	Mixin
	Name  *Ident `parser:"@@"`
	Bound *Type  `parser:"('extends' @@)?"`
}

// TupleType is a Dart 3 record type: `(T, U, {V v})`.
type TupleType struct {
	Mixin
	Positional []*PositionalTypeField `parser:"'(' ( @@ (',' @@)* ','? )?"`
	Named      *NamedTypeSection      `parser:"@@? ')'"`
}

// PositionalTypeField is one entry in a tuple type's positional list. A
// name may syntactically follow the type; it carries no meaning.
type PositionalTypeField struct {
	Mixin
	Type *Type  `parser:"@@"`
	Name *Ident `parser:"@@?"`
}

// NamedTypeSection is the `{ name: type, ... }` section of a tuple type.
type NamedTypeSection struct {
	Mixin
	Fields []*NamedTypeField `parser:"'{' @@ (',' @@)* ','? '}'"`
}

// NamedTypeField is one `name: type` entry of a tuple type's named
// section.
type NamedTypeField struct {
	Mixin
	Name *Ident `parser:"@@ ':'"`
	Type *Type  `parser:"@@"`
}
