package parallel

import (
	"sort"

	"github.com/hoehrmann/demo-parselov/datafile"
	"github.com/hoehrmann/demo-parselov/edgegraph"
	"github.com/hoehrmann/demo-parselov/errs"
	"github.com/hoehrmann/demo-parselov/resolve/parallel/stackgraph"
	"github.com/hoehrmann/demo-parselov/resolve/tree"
)

// frame and walker mirror resolve/backtrack's frame/parser shape (the same
// open-stack, clone-on-branch walk), but the search here is pruned by the
// stack graph O rather than run blind: a successor is only ever considered
// if O reached it with at least one stack that traces back to the floor.
type frame struct {
	vertex int
	offset int
	node   *tree.Tree
}

type walker struct {
	offset int
	vertex int
	stack  []frame
	root   *tree.Tree
	seen   map[edgegraph.Column]bool
}

func (w *walker) clone() *walker {
	stack := make([]frame, len(w.stack))
	for i, fr := range w.stack {
		stack[i] = frame{
			vertex: fr.vertex,
			offset: fr.offset,
			node: &tree.Tree{
				Name:     fr.node.Name,
				Start:    fr.node.Start,
				End:      fr.node.End,
				Children: append([]*tree.Tree(nil), fr.node.Children...),
			},
		}
	}
	seen := make(map[edgegraph.Column]bool, len(w.seen))
	for c := range w.seen {
		seen[c] = true
	}
	return &walker{offset: w.offset, vertex: w.vertex, stack: stack, root: w.root, seen: seen}
}

// liveFromFloor is the forward closure of O.Successors starting at the
// stack floor: every vertex that was processed with at least one stack
// whose top-of-stack chain leads back to the floor. On a well-nested path
// every vertex has its current top-of-stack as an O-predecessor, and that
// top has its own, down to the floor, so filtering a real walk's
// successors to this set only discards vertices whose every stack was
// invalidated (for example by an unmatched final), never a necessary one.
// The set says nothing about whether a vertex can still reach final; the
// walk itself finds that out.
func liveFromFloor(O *stackgraph.Graph, floor Vertex) map[Vertex]bool {
	live := map[Vertex]bool{floor: true}
	queue := []Vertex{floor}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, s := range O.Successors(v) {
			if !live[s] {
				live[s] = true
				queue = append(queue, s)
			}
		}
	}
	return live
}

// extractTree is ParallelResolver's §4.7 "Tree extraction": having already
// confirmed acceptance via O, it reads off one well-nested witness path by
// walking the parse graph G from (0, start_vertex) toward (n, final_vertex),
// at each step restricting candidate null/char successors to those O
// reached with a valid stack, then applying the same well-nested bracket
// matching BacktrackResolver uses (with its own cycle guard, since the
// parse graph can still be locally cyclic even once dead branches are
// pruned). Because live-filtering never removes a necessary branch, and the
// stack graph already proved an accepting witness exists, this terminates
// with a tree rather than exhausting its frontier.
func extractTree(stream *edgegraph.Stream, O *stackgraph.Graph) (*tree.Tree, error) {
	df := stream.DF
	live := liveFromFloor(O, Vertex{Offset: 0, Vertex: 0})

	frontier := []*walker{
		{offset: 0, vertex: df.StartVertex, seen: map[edgegraph.Column]bool{}},
	}

	for len(frontier) > 0 {
		w := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		col := edgegraph.Column{Offset: w.offset, Vertex: w.vertex}
		if w.seen[col] {
			continue
		}
		w.seen[col] = true

		v := df.Vertex(w.vertex)

		switch v.Type {
		case datafile.VertexStart, datafile.VertexIf:
			w.stack = append(w.stack, frame{
				vertex: w.vertex,
				offset: w.offset,
				node:   &tree.Tree{Name: v.Text, Start: w.offset},
			})
		case datafile.VertexFinal, datafile.VertexFi:
			if len(w.stack) == 0 {
				continue
			}
			topVertex := df.Vertex(w.stack[len(w.stack)-1].vertex)
			if topVertex.With != w.vertex || topVertex.NotBranch {
				continue
			}
			top := w.stack[len(w.stack)-1]
			w.stack = w.stack[:len(w.stack)-1]
			top.node.End = w.offset
			if len(w.stack) > 0 {
				parent := w.stack[len(w.stack)-1].node
				parent.Children = append(parent.Children, top.node)
			} else {
				w.root = top.node
			}
		}

		if w.vertex == df.FinalVertex && w.offset+1 >= len(stream.EdgeIDs) && len(w.stack) == 0 {
			return w.root, nil
		}

		var liveSucc []edgegraph.Successor
		for _, s := range stream.SuccessorsAt(w.offset, w.vertex) {
			if live[Vertex{Offset: s.Offset, Vertex: s.To}] {
				liveSucc = append(liveSucc, s)
			}
		}
		if len(liveSucc) == 0 {
			continue
		}

		sort.SliceStable(liveSucc, func(i, j int) bool {
			return df.Vertex(liveSucc[i].To).SortKey < df.Vertex(liveSucc[j].To).SortKey
		})

		for i := len(liveSucc) - 1; i >= 1; i-- {
			alt := w.clone()
			alt.offset = liveSucc[i].Offset
			alt.vertex = liveSucc[i].To
			frontier = append(frontier, alt)
		}

		w.offset = liveSucc[0].Offset
		w.vertex = liveSucc[0].To
		frontier = append(frontier, w)
	}

	return nil, &errs.NoParseTreeError{}
}
