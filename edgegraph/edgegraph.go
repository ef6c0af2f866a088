// Package edgegraph assembles the parse graph from the edge-set stream:
// for each input offset i, edge-set edge_ids[i] contributes null_edges at
// column i and char_edges from column i to column i+1.
package edgegraph

import (
	"github.com/hoehrmann/demo-parselov/datafile"
	"github.com/hoehrmann/demo-parselov/fsm"
)

// Stream is the output of the two-pass simulator: one edge-set ID per
// input offset, plus the terminal edge-set at position n — always
// len(EdgeIDs) == len(input)+1.
type Stream struct {
	EdgeIDs []int
	DF      *datafile.DataFile
}

// Build runs Alphabet, ForwardPass and BackwardPass over input and wraps
// the result as a Stream, alongside the forward pass's acceptance verdict
// so callers can keep resolvers from ever running on rejected input.
func Build(df *datafile.DataFile, input []rune) (stream *Stream, accepted bool, firstBadOffset int) {
	symbols := df.Alphabet.Symbols(input)
	fwd := fsm.RunForward(df.Forwards, symbols)
	edgeIDs := fsm.RunBackward(df.Backwards, fwd.States)
	return &Stream{EdgeIDs: edgeIDs, DF: df}, fwd.Accepted, fwd.FirstBadOffset
}

// Len returns n, the input length (len(EdgeIDs)-1).
func (s *Stream) Len() int {
	return len(s.EdgeIDs) - 1
}

// NullEdgesAt returns the null_edges of the edge-set active at offset i, or
// nil if i falls outside the stream (a resolver must never panic per §7,
// even if a malformed data file's char edges advance a walk past n).
func (s *Stream) NullEdgesAt(i int) []datafile.Edge {
	if i < 0 || i >= len(s.EdgeIDs) {
		return nil
	}
	return s.DF.NullEdges(s.EdgeIDs[i])
}

// CharEdgesAt returns the char_edges of the edge-set active at offset i, or
// nil if i falls outside the stream. Each such edge crosses from column i
// to column i+1.
func (s *Stream) CharEdgesAt(i int) []datafile.Edge {
	if i < 0 || i >= len(s.EdgeIDs) {
		return nil
	}
	return s.DF.CharEdges(s.EdgeIDs[i])
}

// Column identifies one vertex instance in the assembled parse graph: the
// vertex ID together with the input offset (column) it occurs at. Because
// the underlying grammar graph can be cyclic (nullable recursion), seen-sets
// over the parse graph must be keyed by Column, never by vertex identity
// alone.
type Column struct {
	Offset int
	Vertex int
}

// SuccessorsAt returns every (vertex, isChar) pair reachable from v at
// offset i by one null or char edge of the edge-set active there, in the
// order they appear in the table — null edges first, so null successors
// are listed before char successors when keys tie.
func (s *Stream) SuccessorsAt(i int, v int) []Successor {
	var out []Successor
	for _, e := range s.NullEdgesAt(i) {
		if e.From == v {
			out = append(out, Successor{To: e.To, Offset: i, IsChar: false})
		}
	}
	for _, e := range s.CharEdgesAt(i) {
		if e.From == v {
			out = append(out, Successor{To: e.To, Offset: i + 1, IsChar: true})
		}
	}
	return out
}

// Successor is one outgoing edge from a (offset, vertex) parse-graph node.
type Successor struct {
	To     int
	Offset int // the offset of the destination column
	IsChar bool
}
