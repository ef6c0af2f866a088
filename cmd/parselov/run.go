package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hoehrmann/demo-parselov/datafile"
	"github.com/hoehrmann/demo-parselov/dotgraph"
	"github.com/hoehrmann/demo-parselov/edgegraph"
	"github.com/hoehrmann/demo-parselov/resolve/backtrack"
	"github.com/hoehrmann/demo-parselov/resolve/parallel"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

var runLog = commonlog.GetLogger("parselov.run")

var runFlags = struct {
	json     bool
	dot      bool
	resolver string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "run <data-file> <input-file>",
		Short:   "Run a data file over an input and print the parse graph or tree",
		Example: `  parselov run grammar.df.gz input.txt --resolver=parallel`,
		Args:    cobra.ExactArgs(2),
		RunE:    runRun,
	}
	cmd.Flags().BoolVar(&runFlags.json, "json", false, "emit the parse tree as JSON instead of GraphViz DOT")
	cmd.Flags().BoolVar(&runFlags.dot, "dot", false, "emit the parse graph as GraphViz DOT (the default)")
	cmd.MarkFlagsMutuallyExclusive("json", "dot")
	cmd.Flags().StringVar(&runFlags.resolver, "resolver", "backtrack", `which resolver to use: "backtrack" or "parallel"`)
	rootCmd.AddCommand(cmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	df, err := readDataFile(args[0])
	if err != nil {
		return &exitStatus{err: err, code: 2}
	}

	input, err := os.ReadFile(args[1])
	if err != nil {
		return &exitStatus{err: fmt.Errorf("cannot read input file %v: %w", args[1], err), code: 2}
	}

	stream, accepted, firstBad := edgegraph.Build(df, []rune(string(input)))
	runLog.Debugf("forward/backward pass complete: accepted=%v firstBad=%v", accepted, firstBad)
	if !accepted {
		runLog.Errorf("input rejected at offset %v", firstBad)
		return &exitStatus{err: fmt.Errorf("input rejected at offset %v", firstBad), code: 1}
	}

	if runFlags.json {
		return writeJSON(stream)
	}
	return writeDOT(stream)
}

func writeJSON(stream *edgegraph.Stream) error {
	var (
		t   interface{}
		err error
	)
	switch runFlags.resolver {
	case "parallel":
		var res *parallel.Result
		res, err = parallel.Resolve(stream)
		if err == nil {
			t = res.Tree
			if res.Ambiguous != nil {
				runLog.Noticef("%v", res.Ambiguous)
			}
		}
	default:
		t, err = backtrack.Resolve(stream)
	}
	if err != nil {
		runLog.Errorf("resolver %v failed: %v", runFlags.resolver, err)
		return &exitStatus{err: err, code: 1}
	}

	b, err := json.Marshal(t)
	if err != nil {
		return &exitStatus{err: err, code: 1}
	}
	fmt.Println(string(b))
	return nil
}

func writeDOT(stream *edgegraph.Stream) error {
	if err := dotgraph.Write(os.Stdout, stream); err != nil {
		return &exitStatus{err: err, code: 1}
	}
	return nil
}

func readDataFile(path string) (*datafile.DataFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open data file %v: %w", path, err)
	}
	defer f.Close()

	df, err := datafile.Load(f)
	if err != nil {
		return nil, fmt.Errorf("cannot load data file %v: %w", path, err)
	}
	return df, nil
}
