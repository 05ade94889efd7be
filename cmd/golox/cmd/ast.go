package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	loxerrors "github.com/insertnamehere77/loxo/internal/errors"
	"github.com/insertnamehere77/loxo/internal/lexer"
	"github.com/insertnamehere77/loxo/internal/parser"
	"github.com/insertnamehere77/loxo/pkg/ast"
)

func init() {
	rootCmd.AddCommand(astCmd)
}

var astCmd = &cobra.Command{
	Use:   "ast <path>",
	Short: "parse a Lox script and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return &cliError{err: fmt.Errorf("golox: %w", err), code: exitUsage}
		}

		toks, lexErrs := lexer.New(string(source)).ScanTokens()
		if len(lexErrs) > 0 {
			fmt.Fprintln(os.Stderr, loxerrors.FormatAll(lexErrs, string(source), false))
			return &cliError{err: fmt.Errorf("golox: %d diagnostic(s)", len(lexErrs)), code: exitDataErr}
		}

		stmts, parseErrs := parser.New(toks).Parse()
		if len(parseErrs) > 0 {
			fmt.Fprintln(os.Stderr, loxerrors.FormatAll(parseErrs, string(source), false))
			return &cliError{err: fmt.Errorf("golox: %d diagnostic(s)", len(parseErrs)), code: exitDataErr}
		}

		p := &ast.Printer{}
		for _, stmt := range stmts {
			if expr, ok := stmt.(*ast.ExpressionStmt); ok {
				fmt.Println(p.Print(expr.Expr))
				continue
			}
			fmt.Printf("%#v\n", stmt)
		}
		return nil
	},
}
