// Package dotgraph renders an edgegraph.Stream as GraphViz DOT text: one
// node per (column, vertex) pair actually reached during the two-pass
// simulation, and one edge line per null or char edge of the edge-set
// active at each column. Parsing the DOT output back yields a graph
// isomorphic to the in-memory parse graph.
package dotgraph

import (
	"fmt"
	"io"
	"sort"
	"text/template"

	"github.com/hoehrmann/demo-parselov/edgegraph"
)

// node is one "<col>,<vid>" vertex instance that appears in the rendered
// graph, carrying enough of the datafile.Vertex to produce a label.
type node struct {
	Col   int
	VID   int
	Label string
}

func (n node) ID() string {
	return fmt.Sprintf("%d,%d", n.Col, n.VID)
}

// edge is one rendered "from -> to" line.
type edge struct {
	From node
	To   node
}

const dotTemplate = `digraph parse_graph {
{{ range .Nodes -}}
"{{ .ID }}"[label="{{ .Label }}"];
{{ end -}}
{{ range .Edges -}}
"{{ .From.ID }}" -> "{{ .To.ID }}";
{{ end -}}
}
`

// Write renders stream as DOT text to w. It walks every column 0..Len(),
// collecting the null and char edges active there (one line per edge), and
// labels each vertex with its type and text-or-id:
// `"<col>,<vid>"[label="<type> <text|vid>"];`. For a vertex with no type
// the label is the text-or-id alone, with no leading space.
func Write(w io.Writer, stream *edgegraph.Stream) error {
	nodes := map[string]node{}
	var edges []edge

	addNode := func(col, vid int) node {
		n := node{Col: col, VID: vid, Label: vertexLabel(stream, vid)}
		nodes[n.ID()] = n
		return n
	}

	for col := 0; col <= stream.Len(); col++ {
		for _, e := range stream.NullEdgesAt(col) {
			from := addNode(col, e.From)
			to := addNode(col, e.To)
			edges = append(edges, edge{From: from, To: to})
		}
		if col < stream.Len() {
			for _, e := range stream.CharEdgesAt(col) {
				from := addNode(col, e.From)
				to := addNode(col+1, e.To)
				edges = append(edges, edge{From: from, To: to})
			}
		}
	}

	sorted := make([]node, 0, len(nodes))
	for _, n := range nodes {
		sorted = append(sorted, n)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Col != sorted[j].Col {
			return sorted[i].Col < sorted[j].Col
		}
		return sorted[i].VID < sorted[j].VID
	})

	tmpl, err := template.New("dot").Parse(dotTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, struct {
		Nodes []node
		Edges []edge
	}{Nodes: sorted, Edges: edges})
}

func vertexLabel(stream *edgegraph.Stream, vid int) string {
	v := stream.DF.Vertex(vid)
	text := v.Text
	if text == "" {
		text = fmt.Sprintf("%d", vid)
	}
	typ := string(v.Type)
	if typ == "" {
		return text
	}
	return typ + " " + text
}
