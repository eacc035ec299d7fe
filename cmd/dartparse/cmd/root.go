package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "dartparse",
	Short: "A source-to-AST parser for Dart",
	Long: `dartparse reads a Dart compilation unit and produces its declaration
tree: directives, classes, mixins, enums, extensions, typedefs, and
top-level variables and functions.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print extra detail about the parse")
}
