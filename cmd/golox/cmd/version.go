package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print golox's version information",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		fmt.Fprintf(c.OutOrStdout(), "golox %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
		return nil
	},
}
