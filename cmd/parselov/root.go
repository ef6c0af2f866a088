package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "parselov",
	Short: "Run and inspect grammar-agnostic parser data files",
	Long: `parselov provides three features:
- Runs a precompiled parser data file over an input, emitting a parse
  tree or a GraphViz rendering of the parse graph.
- Describes the tables inside a data file in human-readable form.
- Runs bundled test-case fixtures through a data file and diffs the
  resulting tree against an expected shape.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. Errors are left unprinted here: main
// prints the returned error once and picks the process exit code from it.
func Execute() error {
	return rootCmd.Execute()
}

// exitStatus lets a subcommand pick its own process exit code (run uses
// 0/1/2 to distinguish acceptance, rejection, and usage/data errors).
// Any other returned error comes from cobra's own argument and flag
// checking, so exitCode maps it to the usage-error code 2.
type exitStatus struct {
	err  error
	code int
}

func (e *exitStatus) Error() string { return e.err.Error() }
func (e *exitStatus) Unwrap() error { return e.err }

func exitCode(err error) int {
	if e, ok := err.(*exitStatus); ok {
		return e.code
	}
	return 2
}
