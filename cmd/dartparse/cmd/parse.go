package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"github.com/dartast/parser/ast"
	"github.com/dartast/parser/diagnostic"
	"github.com/dartast/parser/parser"
)

var parseDumpAST bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Dart compilation unit and display its declaration tree",
	Long: `Parse reads a Dart compilation unit and builds its declaration tree.

If no file is provided, reads from stdin.
Use --dump-ast to show the full tree instead of a one-line summary.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full declaration tree")
}

func runParse(cmd *cobra.Command, args []string) error {
	name, src, err := readInput(args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "parsing %s (%d bytes)\n", name, len(src))
	}

	start := time.Now()
	file, err := parser.ParseString(name, src)
	if err != nil {
		reportParseError(cmd, name, src, err)
		return err
	}
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "parsed in %s\n", time.Since(start))
	}

	if parseDumpAST {
		tree := treeprint.New()
		addFileBranch(tree, src, file)
		fmt.Fprintln(cmd.OutOrStdout(), tree.String())
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d top-level item(s), %d orphan comment/annotation(s)\n",
		name, len(file.Items), len(file.Orphan))
	return nil
}

func readInput(args []string) (name, src string, err error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("error reading file: %w", err)
		}
		return args[0], string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("error reading stdin: %w", err)
	}
	return "<stdin>", string(data), nil
}

// reportParseError renders the wrapped diagnostic against the source
// text just read, the same Sources/Pretty wiring check.go uses.
func reportParseError(cmd *cobra.Command, name, src string, err error) {
	sources := diagnostic.NewSources()
	sources.Set(name, diagnostic.NewSource(name, src))
	ctx := diagnostic.WithSources(context.Background(), sources)

	spans := diagnostic.Spans(err)
	if len(spans) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	diagnostic.DisplayError(ctx, cmd.ErrOrStderr(), spans, err)
}

// addFileBranch renders file's declaration tree into tree, the same
// treeprint.Tree-building shape module.NewTree uses for HLB's import
// graph: a root node with one AddBranch/AddMetaBranch call per child.
func addFileBranch(tree treeprint.Tree, src string, file *ast.File) {
	tree.SetValue(fmt.Sprintf("File (%d items, %d orphan)", len(file.Items), len(file.Orphan)))
	for _, item := range file.Items {
		addTopLevelItemNode(tree, src, item)
	}
}

func addTopLevelItemNode(tree treeprint.Tree, src string, item *ast.TopLevelItem) {
	switch {
	case item.Directive != nil:
		addDirectiveNode(tree, src, item.Directive)
	case item.Typedef != nil:
		tree.AddMetaBranch("typedef", item.Typedef.Name.Text)
	case item.Variable != nil:
		tree.AddMetaBranch("variable", item.Variable.VarName().Text)
	case item.Function != nil:
		addFuncLikeNode(tree, item.Function)
	case item.Class != nil:
		branch := tree.AddMetaBranch("class", item.Class.Name.Text)
		branch.AddNode(fmt.Sprintf("%d member(s)", len(item.Class.Body.Members)))
	case item.Enum != nil:
		branch := tree.AddMetaBranch("enum", item.Enum.Name.Text)
		branch.AddNode(fmt.Sprintf("%d value(s)", len(item.Enum.Body.Values)))
	case item.Extension != nil:
		name := "<anonymous>"
		if item.Extension.Name != nil {
			name = item.Extension.Name.Text
		}
		branch := tree.AddMetaBranch("extension", name)
		branch.AddNode(fmt.Sprintf("%d member(s)", len(item.Extension.Body.Members)))
	default:
		tree.AddNode("<empty top-level item>")
	}
}

func addDirectiveNode(tree treeprint.Tree, src string, directive *ast.Directive) {
	switch {
	case directive.Import != nil:
		tree.AddMetaBranch("import", ast.Text(src, directive.Import.Path))
	case directive.Export != nil:
		tree.AddMetaBranch("export", ast.Text(src, directive.Export.Path))
	case directive.PartOf != nil:
		tree.AddNode("part-of")
	case directive.Part != nil:
		tree.AddMetaBranch("part", ast.Text(src, directive.Part.Path))
	}
}

func addFuncLikeNode(tree treeprint.Tree, decl *ast.FuncLikeDecl) {
	switch {
	case decl.Operator != nil:
		tree.AddMetaBranch("operator", decl.Operator.Op().Symbol)
	case decl.Function != nil:
		tree.AddMetaBranch("function", decl.Function.Name.Text)
	case decl.Getter != nil:
		tree.AddMetaBranch("getter", decl.Getter.DeclName().Text)
	case decl.Setter != nil:
		tree.AddMetaBranch("setter", decl.Setter.DeclName().Text)
	}
}
