package ast

// ParamList is a parameter list: a comma-separated head of required
// positional parameters, optionally followed by either a `[...]`
// optional-positional group or a `{...}` named group. Setters,
// operators, constructors, plain functions and function types all share
// this production. No code checks a caller's own shape constraint after
// parsing: a setter's list, for one, is accepted with any number of
// parameters, not only exactly one.
type ParamList struct {
	Mixin
	Required []*Param        `parser:"'(' ( @@ (',' @@)* ','? )?"`
	Optional *OptionalParams `parser:"@@?"`
	Named    *NamedParams    `parser:"@@? ')'"`
}

// OptionalParams is the `[ type name = expr, ... ]` optional-positional
// group.
type OptionalParams struct {
	Mixin
	Params []*Param `parser:"'[' @@ (',' @@)* ','? ']'"`
}

// NamedParams is the `{ required? type name = expr, ... }` named group.
type NamedParams struct {
	Mixin
	Params []*Param `parser:"'{' @@ (',' @@)* ','? '}'"`
}

// Param is one parameter: a small modifier set, an optional `var`
// token, either a typed or bare name, and an optional initializer. For
// function-type parameters the name is optional and Modifiers/Var are
// never populated by the caller's grammar (function-type clauses parse
// the same ParamList but consumers should not rely on those fields
// there).
type Param struct {
	Mixin
	Required     bool                `parser:"@'required'?"`
	ModifierToks []*paramModifierTok `parser:"@@*"`
	Var          bool                `parser:"@'var'?"`
	Type         *Type               `parser:"( @@"`
	Name         *Ident              `parser:"  @@"`
	NameOnly     *Ident              `parser:"| @@ )"`
	Initializer  *ExprSlice          `parser:"('=' @@)?"`
}

// Modifiers reduces the parsed modifier tokens into a set.
func (p *Param) Modifiers() ModifierSet[ParamModifier] {
	return paramModifierSetOf(p.ModifierToks)
}

// ParamName resolves the parameter's effective name regardless of
// whether it was captured alongside a type or alone.
func (p *Param) ParamName() *Ident {
	if p.NameOnly != nil {
		return p.NameOnly
	}
	return p.Name
}
