package cmd

import (
	"fmt"
	"io"

	"github.com/npillmayer/mathexpr"
	"github.com/npillmayer/mathexpr/internal/config"
	"github.com/npillmayer/mathexpr/parser"
	"github.com/npillmayer/mathexpr/treeprint"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	parseFormat   string
	parseSymbols  bool
	parsePoison   bool
	parseMaxDepth int
)

var parseCmd = &cobra.Command{
	Use:   "parse [expression]",
	Short: "Parse expressions and print their syntax trees",
	Long: `Parses expressions and prints their syntax trees.

Examples:
  mathexpr parse "2(x + y) >= 1"
  mathexpr parse --symbols "sqrt(49) = 7"
  mathexpr parse --format yaml "max(1, 2, 3)"
  mathexpr parse --poison "2 foo"
  echo "1 + 2" | mathexpr parse --format sexpr`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", config.FormatTree, "output format: tree, sexpr or yaml")
	parseCmd.Flags().BoolVarP(&parseSymbols, "symbols", "s", false, "append a column of symbols to trees")
	parseCmd.Flags().BoolVar(&parsePoison, "poison", false, "replace missing operands by Invalid nodes")
	parseCmd.Flags().IntVar(&parseMaxDepth, "max-depth", parser.DefaultMaxDepth, "maximum nesting depth")
}

// applyParseFlags lets flags given on the command line override the configuration.
func applyParseFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = parseFormat
	}
	if flags.Changed("symbols") {
		cfg.Symbols = parseSymbols
	}
	if flags.Changed("poison") {
		cfg.Policy = parser.Propagate.String()
		if parsePoison {
			cfg.Policy = parser.Poison.String()
		}
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = parseMaxDepth
	}
	return cfg.Validate()
}

func runParse(cmd *cobra.Command, args []string) error {
	if err := applyParseFlags(cmd); err != nil {
		return err
	}
	exprs, err := expressions(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	failed := false
	for _, input := range exprs {
		var diags mathexpr.Diagnostics
		opts := append(cfg.ParserOptions(), parser.WithSink(func(d mathexpr.Diagnostic) {
			diags = append(diags, d)
		}))
		expr, _ := parser.Parse(input, opts...)
		if err := printExpression(cmd.OutOrStdout(), expr); err != nil {
			return err
		}
		printDiagnostics(cmd.ErrOrStderr(), diags)
		failed = failed || diags.HasErrors()
	}
	if failed {
		return errReported
	}
	return nil
}

func printExpression(w io.Writer, expr *mathexpr.Expression) error {
	switch cfg.Format {
	case config.FormatSExpr:
		_, err := fmt.Fprintln(w, expr)
		return err
	case config.FormatYAML:
		out, err := yaml.Marshal(expr)
		if err != nil {
			return fmt.Errorf("cannot convert expression to YAML: %w", err)
		}
		_, err = w.Write(out)
		return err
	}
	var opts []treeprint.Option
	if cfg.Symbols {
		opts = append(opts, treeprint.WithSymbols(cfg.DisplayContext()))
	}
	return treeprint.Fprint(w, expr, opts...)
}
