package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/insertnamehere77/loxo/internal/diagnostics"
	loxerrors "github.com/insertnamehere77/loxo/internal/errors"
	"github.com/insertnamehere77/loxo/internal/interp"
	"github.com/insertnamehere77/loxo/internal/lexer"
	"github.com/insertnamehere77/loxo/internal/parser"
	"github.com/insertnamehere77/loxo/internal/resolver"
	"github.com/insertnamehere77/loxo/pkg/ast"
)

var (
	dumpTokens bool
	dumpAST    bool
	traceExec  bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&dumpTokens, "tokens", false, "print the token stream before running (like the tokens subcommand)")
	runCmd.Flags().BoolVar(&dumpAST, "ast", false, "print the parsed syntax tree before running (like the ast subcommand)")
	runCmd.Flags().BoolVar(&traceExec, "trace", false, "trace each top-level statement as it executes")
}

var runCmd = &cobra.Command{
	Use:   "run <path>",
	Short: "scan, parse, resolve and evaluate a Lox script",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runFile(args[0])
	},
}

// cliError pairs a driver-level error with the exit code spec.md §6
// associates with its stage.
type cliError struct {
	err  error
	code int
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) ExitCode() int { return e.code }

// runFile executes the program at path, printing diagnostics from whichever
// stage fails first and returning an error carrying that stage's exit code
// (spec.md §6's scanner/parser -> 65, resolver/runtime -> 70 convention).
func runFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return &cliError{err: fmt.Errorf("golox: %w", err), code: exitUsage}
	}

	logVerbose("golox: scanning %s", path)
	tokens, lexErrs := lexer.New(string(source)).ScanTokens()
	if len(lexErrs) > 0 {
		return reportAndFail(lexErrs, string(source), exitDataErr)
	}
	if dumpTokens {
		for _, t := range tokens {
			fmt.Println(t.String())
		}
	}

	logVerbose("golox: parsing %s", path)
	stmts, parseErrs := parser.New(tokens).Parse()
	if len(parseErrs) > 0 {
		return reportAndFail(parseErrs, string(source), exitDataErr)
	}
	if dumpAST {
		printer := &ast.Printer{}
		for _, stmt := range stmts {
			if expr, ok := stmt.(*ast.ExpressionStmt); ok {
				fmt.Println(printer.Print(expr.Expr))
				continue
			}
			fmt.Printf("%#v\n", stmt)
		}
	}

	logVerbose("golox: resolving %s", path)
	locals, resolveErrs := resolver.New().Resolve(stmts)
	if len(resolveErrs) > 0 {
		return reportAndFail(resolveErrs, string(source), exitSoftware)
	}

	logVerbose("golox: interpreting %s", path)
	in := interp.New(os.Stdout)
	in.SetLocals(locals)
	if traceExec {
		in.SetTrace(os.Stderr)
	}
	if runErr := in.Interpret(stmts); runErr != nil {
		diag, ok := runErr.(*diagnostics.Diagnostic)
		if !ok {
			diag = diagnostics.New(diagnostics.RuntimeStage, 0, "%s", runErr.Error())
		}
		return reportAndFail([]*diagnostics.Diagnostic{diag}, string(source), exitSoftware)
	}

	return nil
}

func reportAndFail(diags []*diagnostics.Diagnostic, source string, code int) error {
	fmt.Fprintln(os.Stderr, loxerrors.FormatAll(diags, source, !color.NoColor))
	return &cliError{err: fmt.Errorf("golox: %d diagnostic(s)", len(diags)), code: code}
}
