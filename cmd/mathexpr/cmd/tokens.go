package cmd

import (
	"errors"
	"fmt"

	"github.com/npillmayer/mathexpr/lexer"
	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [expression]",
	Short: "Print the tokens of expressions",
	Long: `Splits expressions into tokens and prints them together with their
byte offsets.

Examples:
  mathexpr tokens "max(x, 2.5)"`,
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	exprs, err := expressions(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	failed := false
	for _, input := range exprs {
		tokens, err := lexer.Tokenize(input)
		var lexerr *lexer.LexError
		if errors.As(err, &lexerr) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s %s\n", errorStyle.Render("error:"),
				mutedStyle.Render(fmt.Sprintf("at %d", lexerr.Offset)), lexerr.Error())
			failed = true
			continue
		} else if err != nil {
			return err
		}
		for _, tok := range tokens {
			fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", tok.Offset, tok)
		}
	}
	if failed {
		return errReported
	}
	return nil
}
