package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dartast/parser/parser"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Parse a Dart compilation unit and report diagnostics",
	Long: `Check parses a Dart compilation unit and exits nonzero if parsing
fails, printing a rendered diagnostic to stderr.

If no file is provided, reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	name, src, err := readInput(args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "checking %s (%d bytes)\n", name, len(src))
	}

	if _, err := parser.ParseString(name, src); err != nil {
		reportParseError(cmd, name, src, err)
		return fmt.Errorf("%s: invalid", name)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", name)
	return nil
}
