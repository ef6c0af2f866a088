package main

import (
	"io"
	"os"
	"text/template"

	"github.com/hoehrmann/demo-parselov/datafile"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "describe <data-file>",
		Short:   "Print a data file's tables in readable form",
		Example: `  parselov describe grammar.df.gz`,
		Args:    cobra.ExactArgs(1),
		RunE:    runDescribe,
	}
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	df, err := readDataFile(args[0])
	if err != nil {
		return &exitStatus{err: err, code: 2}
	}
	if err := writeDescription(os.Stdout, df); err != nil {
		return &exitStatus{err: err, code: 1}
	}
	return nil
}

type vertexCounts struct {
	Start, Final, If, Fi, Plain int
}

type description struct {
	VertexCount int
	EdgeSetCount int
	StartVertex  int
	FinalVertex  int
	Vertices     vertexCounts
	ForwardStates  int
	BackwardStates int
}

const describeTemplate = `# States

forwards:  {{ .ForwardStates }}
backwards: {{ .BackwardStates }}

# Vertices

{{ .VertexCount }} total, start={{ .StartVertex }}, final={{ .FinalVertex }}
  start: {{ .Vertices.Start }}
  final: {{ .Vertices.Final }}
  if:    {{ .Vertices.If }}
  fi:    {{ .Vertices.Fi }}
  plain: {{ .Vertices.Plain }}

# Edge sets

{{ .EdgeSetCount }} total
`

func writeDescription(w io.Writer, df *datafile.DataFile) error {
	d := description{
		VertexCount:  df.VertexCount(),
		EdgeSetCount: df.EdgeSetCount(),
		StartVertex:  df.StartVertex,
		FinalVertex:  df.FinalVertex,
		ForwardStates:  df.Forwards.StateCount(),
		BackwardStates: df.Backwards.StateCount(),
	}
	for i := 0; i < df.VertexCount(); i++ {
		switch df.Vertex(i).Type {
		case datafile.VertexStart:
			d.Vertices.Start++
		case datafile.VertexFinal:
			d.Vertices.Final++
		case datafile.VertexIf:
			d.Vertices.If++
		case datafile.VertexFi:
			d.Vertices.Fi++
		default:
			d.Vertices.Plain++
		}
	}

	tmpl, err := template.New("").Parse(describeTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, d)
}
