// Package backtrack implements BacktrackResolver: a depth-first,
// priority-ordered search that runs a single cooperative walk over the
// parse graph, finds one well-nested path, and emits it as a nested Tree.
package backtrack

import (
	"sort"

	"github.com/hoehrmann/demo-parselov/datafile"
	"github.com/hoehrmann/demo-parselov/edgegraph"
	"github.com/hoehrmann/demo-parselov/errs"
	"github.com/hoehrmann/demo-parselov/resolve/tree"
)

// frame is one entry of a parser's stack: the start vertex that opened it,
// the offset it opened at, and the in-progress tree.Tree node it will close
// into.
type frame struct {
	vertex int
	offset int
	node   *tree.Tree
}

// parser is one frontier element: a candidate path through the parse
// graph, carrying its own stack, in-progress tree, and the set of
// (offset, vertex) columns already visited along this path.
type parser struct {
	offset int
	vertex int
	stack  []frame
	root   *tree.Tree
	seen   map[edgegraph.Column]bool
}

// clone produces an independent copy suitable for a sibling alternative.
// Only the open stack frames need deep copies (their Children slices are
// still being appended to); completed subtrees hanging off them are
// immutable once closed and may be shared. seen is copied too, since a
// cycle visited on one branch says nothing about a sibling branch that
// never took it.
func (p *parser) clone() *parser {
	stack := make([]frame, len(p.stack))
	for i, fr := range p.stack {
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
	seen := make(map[edgegraph.Column]bool, len(p.seen))
	for c := range p.seen {
		seen[c] = true
	}
	return &parser{offset: p.offset, vertex: p.vertex, stack: stack, root: p.root, seen: seen}
}

// Resolve runs the search over stream, starting at stream.DF.StartVertex,
// and returns the first well-nested parse tree found under sort_key /
// null-before-char priority order. It returns a *errs.NoParseTreeError if
// the frontier empties without acceptance.
func Resolve(stream *edgegraph.Stream) (*tree.Tree, error) {
	df := stream.DF
	frontier := []*parser{
		{offset: 0, vertex: df.StartVertex, seen: map[edgegraph.Column]bool{}},
	}

	for len(frontier) > 0 {
		p := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		// Null-edge cycles (nullable-nullable recursion) can return a
		// parser to the same vertex at the same offset with nothing
		// consumed in between; without this guard such a parser re-pushes
		// itself forever and the frontier never empties. Per spec, the
		// seen-set is keyed by (vertex, offset) alone, not by stack
		// contents.
		col := edgegraph.Column{Offset: p.offset, Vertex: p.vertex}
		if p.seen[col] {
			continue
		}
		p.seen[col] = true

		v := df.Vertex(p.vertex)

		switch v.Type {
		case datafile.VertexStart, datafile.VertexIf:
			p.stack = append(p.stack, frame{
				vertex: p.vertex,
				offset: p.offset,
				node:   &tree.Tree{Name: v.Text, Start: p.offset},
			})
		case datafile.VertexFinal, datafile.VertexFi:
			if len(p.stack) == 0 {
				continue // unmatched final: discard this parser
			}
			topVertex := df.Vertex(p.stack[len(p.stack)-1].vertex)
			if topVertex.With != p.vertex || topVertex.NotBranch {
				// Unmatched bracket, or this close pairs with the tail
				// of an if/fi guard's excluded "not" alternative: the
				// guard matched, so discard this parser.
				continue
			}
			top := p.stack[len(p.stack)-1]
			p.stack = p.stack[:len(p.stack)-1]
			top.node.End = p.offset
			if len(p.stack) > 0 {
				parent := p.stack[len(p.stack)-1].node
				parent.Children = append(parent.Children, top.node)
			} else {
				p.root = top.node
			}
		}

		// Acceptance check. The off-by-one offset+1 >= len(edge_ids) test
		// is deliberate: it matches the terminal edge-set convention at
		// position n, not a one-past-the-end mistake.
		if p.vertex == df.FinalVertex && p.offset+1 >= len(stream.EdgeIDs) && len(p.stack) == 0 {
			return p.root, nil
		}

		succ := stream.SuccessorsAt(p.offset, p.vertex)
		if len(succ) == 0 {
			continue // dead end, discard
		}

		sort.SliceStable(succ, func(i, j int) bool {
			return df.Vertex(succ[i].To).SortKey < df.Vertex(succ[j].To).SortKey
		})

		for i := len(succ) - 1; i >= 1; i-- {
			alt := p.clone()
			alt.offset = succ[i].Offset
			alt.vertex = succ[i].To
			frontier = append(frontier, alt)
		}

		p.offset = succ[0].Offset
		p.vertex = succ[0].To
		frontier = append(frontier, p)
	}

	return nil, &errs.NoParseTreeError{}
}
