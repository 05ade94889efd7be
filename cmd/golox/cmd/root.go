// Package cmd implements the golox command-line driver: a thin collaborator
// around the scanner/parser/resolver/evaluator pipeline (spec.md §1's
// "out of scope" external collaborators), following the teacher's
// cmd/dwscript/cmd package layout.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information, set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "golox [path]",
	Short: "golox is a tree-walking interpreter for Lox",
	Long: `golox is a Go implementation of Lox, the small dynamically-typed
scripting language from Crafting Interpreters: first-class functions,
closures, and single-inheritance classes over a fixed set of primitive
types (numbers, strings, booleans, nil).

Running golox with a single file argument scans, parses, resolves and
evaluates it in one pass:

  golox script.lox

Use the "run", "tokens" and "ast" subcommands for finer control.`,
	Version:       Version,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) == 0 {
			c.Usage()
			return &cliError{err: fmt.Errorf("golox: expected a script path"), code: exitUsage}
		}
		return runFile(args[0])
	},
}

// Execute runs the root command and returns its exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if code, ok := err.(exitCoder); ok {
			return code.ExitCode()
		}
		fmt.Fprintln(os.Stderr, err)
		return exitSoftware
	}
	return 0
}

// exitCoder lets a returned error carry the process exit code the driver
// should use, instead of collapsing every failure to a single status.
type exitCoder interface {
	error
	ExitCode() int
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostic output")
}

// logVerbose writes a diagnostic line to stderr when --verbose is set,
// following the teacher's `verbose && ...` gate in cmd/dwscript/cmd/run.go.
func logVerbose(format string, args ...any) {
	if !verbose {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
