package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/insertnamehere77/loxo/internal/lexer"
	loxerrors "github.com/insertnamehere77/loxo/internal/errors"
)

func init() {
	rootCmd.AddCommand(tokensCmd)
}

var tokensCmd = &cobra.Command{
	Use:   "tokens <path>",
	Short: "scan a Lox script and print its token stream",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return &cliError{err: fmt.Errorf("golox: %w", err), code: exitUsage}
		}

		toks, errs := lexer.New(string(source)).ScanTokens()
		for _, t := range toks {
			fmt.Println(t.String())
		}
		if len(errs) > 0 {
			fmt.Fprintln(os.Stderr, loxerrors.FormatAll(errs, string(source), false))
			return &cliError{err: fmt.Errorf("golox: %d diagnostic(s)", len(errs)), code: exitDataErr}
		}
		return nil
	},
}
