// Package cmd holds the commands of the mathexpr command line tool.
package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/mathexpr/internal/config"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	traceLevel string
	cfg        = config.Default()
)

// errReported signals failure after the problems have been printed.
var errReported = errors.New("expression has errors")

var rootCmd = &cobra.Command{
	Use:   "mathexpr",
	Short: "Parse mathematical expressions",
	Long: `mathexpr parses mathematical expressions like "2(x + y) >= sqrt(2)" and
prints their syntax trees, tokens or diagnostics.

Expressions are taken from the command line arguments. Without arguments,
every line of standard input is an expression of its own.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the command given on the command line.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(os.Stderr, err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $MATHEXPR_CONFIG or ~/.config/mathexpr/config.toml)")
	rootCmd.PersistentFlags().StringVar(&traceLevel, "trace", "", "trace level: error, info or debug")
}

// setup loads the configuration and sets up tracing.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("trace") {
		if _, err := config.ParseTraceLevel(traceLevel); err != nil {
			return err
		}
		cfg.TraceLevel = traceLevel
	}
	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetTraceLevel(cfg.Level())
	gtrace.CoreTracer.Debugf("configuration: %+v", *cfg)
	return nil
}

// expressions returns the expressions to work on: the arguments joined to a
// single expression, or the non-empty lines of in.
func expressions(args []string, in io.Reader) ([]string, error) {
	if len(args) > 0 {
		return []string{strings.Join(args, " ")}, nil
	}
	var exprs []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			exprs = append(exprs, line)
		}
	}
	return exprs, scanner.Err()
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("error:"), err)
}
