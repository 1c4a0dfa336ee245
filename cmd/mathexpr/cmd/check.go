package cmd

import (
	"fmt"

	"github.com/npillmayer/mathexpr"
	"github.com/npillmayer/mathexpr/grammar"
	"github.com/npillmayer/mathexpr/lexer"
	"github.com/npillmayer/mathexpr/parser"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [expression]",
	Short: "Check expressions against the reference grammar",
	Long: `Checks if expressions are well-formed. Expressions are run through the
Earley reference grammar, which does not forgive any errors, and through the
expression parser. Differences between the two are reported.

Examples:
  mathexpr check "sin(x)^2 + cos(x)^2 = 1"
  mathexpr check < expressions.txt`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	exprs, err := expressions(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	failed := false
	for _, input := range exprs {
		tokens, err := lexer.Tokenize(input)
		if err != nil {
			fmt.Fprintf(out, "%s %s: %v\n", errorStyle.Render("invalid "), input, err)
			failed = true
			continue
		}
		accept, _ := grammar.Recognize(tokens)
		var diags mathexpr.Diagnostics
		opts := append(cfg.ParserOptions(), parser.WithSink(func(d mathexpr.Diagnostic) {
			diags = append(diags, d)
		}))
		expr, _ := parser.Parse(input, opts...)
		switch {
		case accept && len(diags) == 0:
			fmt.Fprintf(out, "%s %s\n", successStyle.Render("ok      "), input)
		case accept:
			fmt.Fprintf(out, "%s %s: %v\n", warningStyle.Render("warning "), input, diags)
			failed = failed || diags.HasErrors()
		case len(diags) == 0:
			fmt.Fprintf(out, "%s %s: parser accepts %s\n", warningStyle.Render("mismatch"), input, expr)
			failed = true
		default:
			fmt.Fprintf(out, "%s %s: %v\n", errorStyle.Render("invalid "), input, diags)
			failed = true
		}
	}
	if failed {
		return errReported
	}
	return nil
}
