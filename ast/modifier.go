package ast

// ModifierSet is a compact bit-set over a closed enumeration of
// declaration modifiers, generalizing the `1 << n` bitflag enums found in
// the Rust implementation this grammar was distilled from
// (ClassModifierSet, ClassMemberModifierSet): a single machine word with
// With/Contains/FromIter, no separate allocation, at most one bit per
// variant.
type ModifierSet[M ~uint32] uint32

// With returns the set with m added.
func (s ModifierSet[M]) With(m M) ModifierSet[M] {
	return s | ModifierSet[M](m)
}

// Contains reports whether m is a member of the set.
func (s ModifierSet[M]) Contains(m M) bool {
	return m != 0 && uint32(s)&uint32(m) == uint32(m)
}

// Empty reports whether no modifier bits are set.
func (s ModifierSet[M]) Empty() bool {
	return s == 0
}

// FromIter builds a ModifierSet from a slice of modifiers, as many times
// as called, idempotently.
func FromIter[M ~uint32](ms ...M) ModifierSet[M] {
	var s ModifierSet[M]
	for _, m := range ms {
		s = s.With(m)
	}
	return s
}

// Members returns the members of the set present in all, in the order
// all lists them (the declared enum order), each at most once.
func (s ModifierSet[M]) Members(all []M) []M {
	var out []M
	for _, m := range all {
		if s.Contains(m) {
			out = append(out, m)
		}
	}
	return out
}

// ClassModifier is the vocabulary of class/mixin declaration modifiers.
// Class and Mixin are themselves bits in the set, following the source's
// representation rather than a separate discriminant.
type ClassModifier uint32

const (
	ClassModifierClass ClassModifier = 1 << iota
	ClassModifierMixin
	ClassModifierAbstract
	ClassModifierBase
	ClassModifierFinal
	ClassModifierInterface
	ClassModifierSealed
)

// AllClassModifiers is the declared order used for Members().
var AllClassModifiers = []ClassModifier{
	ClassModifierClass,
	ClassModifierMixin,
	ClassModifierAbstract,
	ClassModifierBase,
	ClassModifierFinal,
	ClassModifierInterface,
	ClassModifierSealed,
}

// VariableModifier is the vocabulary of variable/field declaration
// modifiers.
type VariableModifier uint32

const (
	VariableModifierExternal VariableModifier = 1 << iota
	VariableModifierStatic
	VariableModifierConst
	VariableModifierFinal
	VariableModifierLate
	VariableModifierCovariant
)

var AllVariableModifiers = []VariableModifier{
	VariableModifierExternal,
	VariableModifierStatic,
	VariableModifierConst,
	VariableModifierFinal,
	VariableModifierLate,
	VariableModifierCovariant,
}

// FuncModifier is the vocabulary of function-like declaration modifiers.
type FuncModifier uint32

const (
	FuncModifierExternal FuncModifier = 1 << iota
	FuncModifierStatic
)

var AllFuncModifiers = []FuncModifier{FuncModifierExternal, FuncModifierStatic}

// ParamModifier is the vocabulary of parameter modifiers.
type ParamModifier uint32

const (
	ParamModifierCovariant ParamModifier = 1 << iota
	ParamModifierFinal
)

var AllParamModifiers = []ParamModifier{ParamModifierCovariant, ParamModifierFinal}

// ConstructorModifier is the vocabulary of constructor modifiers. The
// grammar accepts at most one of these per constructor by construction
// (a single optional token), but it is still modeled as a set so callers
// use the same With/Contains vocabulary as every other modifier kind.
type ConstructorModifier uint32

const (
	ConstructorModifierConst ConstructorModifier = 1 << iota
	ConstructorModifierFactory
	ConstructorModifierExternal
)

var AllConstructorModifiers = []ConstructorModifier{
	ConstructorModifierConst,
	ConstructorModifierFactory,
	ConstructorModifierExternal,
}

// The grammar captures each modifier occurrence as a small literal
// token node (one struct per vocabulary, since the literal alternation
// that belongs in the struct tag can't itself be parameterized by a
// Go type argument), then folds the token list into a ModifierSet.
// This mirrors the repeated-token-then-reduce shape used throughout
// this package rather than relying on participle's Capture hook, which
// is designed for a single captured value per call, not for
// accumulating a set across repeated matches.

type classModifierTok struct {
	Mixin
	Text string `parser:"@('class'|'mixin'|'abstract'|'base'|'final'|'interface'|'sealed')"`
}

func classModifierSetOf(toks []*classModifierTok) ModifierSet[ClassModifier] {
	var s ModifierSet[ClassModifier]
	for _, t := range toks {
		switch t.Text {
		case "class":
			s = s.With(ClassModifierClass)
		case "mixin":
			s = s.With(ClassModifierMixin)
		case "abstract":
			s = s.With(ClassModifierAbstract)
		case "base":
			s = s.With(ClassModifierBase)
		case "final":
			s = s.With(ClassModifierFinal)
		case "interface":
			s = s.With(ClassModifierInterface)
		case "sealed":
			s = s.With(ClassModifierSealed)
		}
	}
	return s
}

type variableModifierTok struct {
	Mixin
	Text string `parser:"@('external'|'static'|'const'|'final'|'late'|'covariant')"`
}

func variableModifierSetOf(toks []*variableModifierTok) ModifierSet[VariableModifier] {
	var s ModifierSet[VariableModifier]
	for _, t := range toks {
		switch t.Text {
		case "external":
			s = s.With(VariableModifierExternal)
		case "static":
			s = s.With(VariableModifierStatic)
		case "const":
			s = s.With(VariableModifierConst)
		case "final":
			s = s.With(VariableModifierFinal)
		case "late":
			s = s.With(VariableModifierLate)
		case "covariant":
			s = s.With(VariableModifierCovariant)
		}
	}
	return s
}

type funcModifierTok struct {
	Mixin
	Text string `parser:"@('external'|'static')"`
}

func funcModifierSetOf(toks []*funcModifierTok) ModifierSet[FuncModifier] {
	var s ModifierSet[FuncModifier]
	for _, t := range toks {
		switch t.Text {
		case "external":
			s = s.With(FuncModifierExternal)
		case "static":
			s = s.With(FuncModifierStatic)
		}
	}
	return s
}

type paramModifierTok struct {
	Mixin
	Text string `parser:"@('covariant'|'final')"`
}

func paramModifierSetOf(toks []*paramModifierTok) ModifierSet[ParamModifier] {
	var s ModifierSet[ParamModifier]
	for _, t := range toks {
		switch t.Text {
		case "covariant":
			s = s.With(ParamModifierCovariant)
		case "final":
			s = s.With(ParamModifierFinal)
		}
	}
	return s
}

type constructorModifierTok struct {
	Mixin
	Text string `parser:"@('const'|'factory'|'external')"`
}

func constructorModifierSetOf(toks []*constructorModifierTok) ModifierSet[ConstructorModifier] {
	var s ModifierSet[ConstructorModifier]
	for _, t := range toks {
		switch t.Text {
		case "const":
			s = s.With(ConstructorModifierConst)
		case "factory":
			s = s.With(ConstructorModifierFactory)
		case "external":
			s = s.With(ConstructorModifierExternal)
		}
	}
	return s
}
