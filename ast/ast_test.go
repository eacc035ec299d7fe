package ast

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStringLiteralSpanMatchesOuterQuotes checks spec.md §8's property
// (c): a string's body-slice span exactly matches the text between (and
// including) its outer quotes, across every shape and a nested
// interpolation hole.
func TestStringLiteralSpanMatchesOuterQuotes(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want string
	}{
		{"single-quoted", `var x = 'hello';`, `'hello'`},
		{"double-quoted", `var x = "hello";`, `"hello"`},
		{"raw", "var x = r'hello';", "r'hello'"},
		{"triple-single", "var x = '''hello''';", "'''hello'''"},
		{"nested interpolation", `var x = "${f([1, "${g()}"])}";`, `"${f([1, "${g()}"])}"`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			file := &File{}
			err := Parser.ParseString("t", tc.src, file)
			require.NoError(t, err)
			require.Len(t, file.Items, 1)
			lit := file.Items[0].Variable.Initializer
			require.NotNil(t, lit)
			assert.Equal(t, tc.want, Text(tc.src, lit))
		})
	}
}

// TestMetadataPreservesSourceOrder checks spec.md §8's structural
// property: metadata order is source order, including comment/
// annotation interleaving.
func TestMetadataPreservesSourceOrder(t *testing.T) {
	src := `
// leading comment
@A()
/* middle */
@B()
class C {}
`
	file := &File{}
	err := Parser.ParseString("t", src, file)
	require.NoError(t, err)
	require.Len(t, file.Items, 1)

	meta := file.Items[0].Meta
	require.Len(t, meta, 4)
	assert.NotNil(t, meta[0].Comment)
	assert.NotNil(t, meta[1].Annotation)
	assert.Equal(t, "A", meta[1].Annotation.Name.Text)
	assert.NotNil(t, meta[2].Comment)
	assert.NotNil(t, meta[3].Annotation)
	assert.Equal(t, "B", meta[3].Annotation.Name.Text)
}

// TestScopeConsumesBalancedBrackets checks spec.md §8's property (b):
// arbitrary balanced-bracket bodies are consumed entirely by the scope
// scanner, whatever nesting of parens/brackets/braces they contain.
func TestScopeConsumesBalancedBrackets(t *testing.T) {
	src := `void f() { if (true) { g([1, 2, {3: 4}]); } }`
	file := &File{}
	err := Parser.ParseString("t", src, file)
	require.NoError(t, err)
	require.Len(t, file.Items, 1)

	block := file.Items[0].Function.Function.Tail.Body.Block
	require.NotNil(t, block)
	assert.Equal(t, strings.Index(src, "{"), block.Pos.Offset)
	assert.Equal(t, len(src), block.EndPos.Offset)
}

// TestFileSnapshot snapshots the declaration-shape summary of a file
// exercising most top-level productions at once, so a regression in any
// one of them shows up as a snapshot diff.
func TestFileSnapshot(t *testing.T) {
	src := `
import 'dart:async' show Future;
export 'src/impl.dart' hide Hidden;

typedef Callback<T> = void Function(T value);

abstract class Animal {
  final String name;
  Animal(this.name);
  String get label => name;
  set label(String value) {}
}

enum Direction { north, south, east, west }

extension StringExt on String {
  bool get isBlank => trim().isEmpty;
}
`
	file := &File{}
	err := Parser.ParseString("t", src, file)
	require.NoError(t, err)

	var summary strings.Builder
	for _, item := range file.Items {
		summary.WriteString(summarizeItem(item))
		summary.WriteString("\n")
	}
	snaps.MatchSnapshot(t, "file_summary", summary.String())
}

func summarizeItem(item *TopLevelItem) string {
	switch {
	case item.Directive != nil:
		switch {
		case item.Directive.Import != nil:
			return fmt.Sprintf("import %s", item.Directive.Import.Path.Pos)
		case item.Directive.Export != nil:
			return fmt.Sprintf("export %s", item.Directive.Export.Path.Pos)
		case item.Directive.PartOf != nil:
			return "part-of"
		case item.Directive.Part != nil:
			return "part"
		}
	case item.Typedef != nil:
		return fmt.Sprintf("typedef %s", item.Typedef.Name.Text)
	case item.Variable != nil:
		return fmt.Sprintf("variable %s", item.Variable.VarName().Text)
	case item.Function != nil:
		switch {
		case item.Function.Function != nil:
			return fmt.Sprintf("function %s", item.Function.Function.Name.Text)
		case item.Function.Getter != nil:
			return fmt.Sprintf("getter %s", item.Function.Getter.DeclName().Text)
		case item.Function.Setter != nil:
			return fmt.Sprintf("setter %s", item.Function.Setter.DeclName().Text)
		case item.Function.Operator != nil:
			return fmt.Sprintf("operator %s", item.Function.Operator.Op().Symbol)
		}
	case item.Class != nil:
		return fmt.Sprintf("class %s (%d members)", item.Class.Name.Text, len(item.Class.Body.Members))
	case item.Enum != nil:
		return fmt.Sprintf("enum %s (%d values)", item.Enum.Name.Text, len(item.Enum.Body.Values))
	case item.Extension != nil:
		name := "<anonymous>"
		if item.Extension.Name != nil {
			name = item.Extension.Name.Text
		}
		return fmt.Sprintf("extension %s (%d members)", name, len(item.Extension.Body.Members))
	}
	return "<empty>"
}
