package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hoehrmann/demo-parselov/tester"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "test <data-file> <test-file>|<test-directory>",
		Short:   "Run fixture test cases against a data file",
		Example: `  parselov test grammar.df.gz testdata/`,
		Args:    cobra.ExactArgs(2),
		RunE:    runTest,
	}
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	df, err := readDataFile(args[0])
	if err != nil {
		return &exitStatus{err: err, code: 2}
	}

	cs := tester.ListTestCases(args[1])
	errOccurred := false
	for _, c := range cs {
		if c.Error != nil {
			fmt.Fprintf(os.Stderr, "failed to read a test case: %v\n%v\n", c.FilePath, c.Error)
			errOccurred = true
		}
	}
	if errOccurred {
		return &exitStatus{err: errors.New("cannot run test"), code: 2}
	}

	t := &tester.Tester{
		DataFile: df,
		Cases:    cs,
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(os.Stdout, r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return &exitStatus{err: errors.New("test failed"), code: 1}
	}
	return nil
}
