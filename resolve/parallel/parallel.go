// Package parallel implements ParallelResolver: a non-deterministic
// pushdown transducer simulation that processes every live alternative at
// once by sharing a "stack graph" (package stackgraph) across them, rather
// than cloning per-alternative state the way resolve/backtrack does.
package parallel

import (
	"github.com/hoehrmann/demo-parselov/datafile"
	"github.com/hoehrmann/demo-parselov/edgegraph"
	"github.com/hoehrmann/demo-parselov/errs"
	"github.com/hoehrmann/demo-parselov/resolve/parallel/stackgraph"
	"github.com/hoehrmann/demo-parselov/resolve/tree"
)

// Vertex is a parse-graph/stack-graph vertex: a (column, vertex-id) pair.
type Vertex = stackgraph.Vertex

// Result is ParallelResolver's output: an acceptance witness plus, when the
// stack graph exposes more than one path into the final vertex, an
// AmbiguousResult recording that ambiguity informationally — it does not
// change acceptance.
type Result struct {
	Tree      *tree.Tree
	Ambiguous *errs.AmbiguousResult
}

// Resolve runs the per-column stack-graph simulation over stream, and
// reports acceptance/ambiguity plus a witness tree.
//
// Tree extraction (§4.7): once the stack graph confirms an accepting
// witness exists, extractTree reads one off directly from O and G — see
// extract.go. if/fi pairs share final's with-matching push/pop rule, plus
// an and-not check: a predecessor of fi flagged NotBranch means the
// excluded alternative matched, so that pairing is discarded exactly like
// an unmatched bracket — see DESIGN.md.
func Resolve(stream *edgegraph.Stream) (*Result, error) {
	df := stream.DF
	n := stream.Len()

	O := stackgraph.New()
	reached := map[Vertex]bool{}

	floor := Vertex{Offset: 0, Vertex: 0}
	start := Vertex{Offset: 0, Vertex: df.StartVertex}
	O.AddEdge(floor, start)

	heads := []Vertex{start}
	for c := 0; c <= n; c++ {
		heads = processColumn(df, stream, O, reached, c, heads)
	}

	final := Vertex{Offset: n, Vertex: df.FinalVertex}
	if !O.HasEdge(start, final) || !reached[final] {
		return nil, &errs.NoParseTreeError{}
	}

	t, err := extractTree(stream, O)
	if err != nil {
		return nil, err
	}

	var amb *errs.AmbiguousResult
	if w := len(O.Predecessors(final)); w > 1 {
		amb = &errs.AmbiguousResult{WitnessCount: w}
	}

	return &Result{Tree: t, Ambiguous: amb}, nil
}

// processColumn runs the per-column algorithm: it visits every vertex
// reachable from heads through the column's null edges (revisiting a
// vertex whenever new stack-graph edges make it see new predecessors — a
// seen-set guard needed for nullable-recursion cycles), updating O via
// push ({start, if}), pop ({final, fi}), or copy (otherwise). It returns
// the new heads for column c+1: the destinations of char edges out of
// vertices actually reached this column.
func processColumn(df *datafile.DataFile, stream *edgegraph.Stream, O *stackgraph.Graph, reached map[Vertex]bool, c int, heads []Vertex) []Vertex {
	queue := make([]int, 0, len(heads))
	inQueue := map[int]bool{}
	visited := map[int]bool{}

	enqueue := func(vid int) {
		if !inQueue[vid] {
			queue = append(queue, vid)
			inQueue[vid] = true
		}
	}

	for _, h := range heads {
		if h.Offset == c {
			enqueue(h.Vertex)
		}
	}

	for len(queue) > 0 {
		vid := queue[0]
		queue = queue[1:]
		inQueue[vid] = false

		visited[vid] = true
		cur := Vertex{Offset: c, Vertex: vid}
		reached[cur] = true

		v := df.Vertex(vid)
		succ := stream.SuccessorsAt(c, vid)

		switch v.Type {
		case datafile.VertexStart, datafile.VertexIf:
			for _, s := range succ {
				dst := Vertex{Offset: s.Offset, Vertex: s.To}
				if O.AddEdge(cur, dst) && !s.IsChar {
					enqueue(s.To)
				}
			}

		case datafile.VertexFinal, datafile.VertexFi:
			for _, p := range O.Predecessors(cur) {
				if df.Vertex(p.Vertex).With != vid || df.Vertex(p.Vertex).NotBranch {
					// Unmatched bracket, or p is the tail of the
					// excluded "not" alternative of an if/fi guard:
					// either way this pairing is invalid and must not
					// propagate past cur.
					O.DeleteEdge(p, cur)
					continue
				}
				for _, s := range succ {
					dst := Vertex{Offset: s.Offset, Vertex: s.To}
					for _, pp := range O.Predecessors(p) {
						if O.AddEdge(pp, dst) && !s.IsChar {
							enqueue(s.To)
						}
					}
				}
			}

		default:
			for _, p := range O.Predecessors(cur) {
				for _, s := range succ {
					dst := Vertex{Offset: s.Offset, Vertex: s.To}
					if O.AddEdge(p, dst) && !s.IsChar {
						enqueue(s.To)
					}
				}
			}
		}
	}

	var newHeads []Vertex
	seen := map[Vertex]bool{}
	for vid := range visited {
		for _, s := range stream.SuccessorsAt(c, vid) {
			if !s.IsChar {
				continue
			}
			h := Vertex{Offset: s.Offset, Vertex: s.To}
			if !seen[h] {
				seen[h] = true
				newHeads = append(newHeads, h)
			}
		}
	}
	return newHeads
}
