package datafile

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"strconv"

	"github.com/hoehrmann/demo-parselov/alphabet"
	"github.com/hoehrmann/demo-parselov/compressor"
	"github.com/hoehrmann/demo-parselov/errs"
	"github.com/hoehrmann/demo-parselov/fsm"
)

// Vertex is the public, read-only view of one entry in the vertices table.
type Vertex struct {
	Type        VertexType
	Text        string
	With        int
	SortKey     int
	StackVertex int
	NotBranch   bool
}

// DataFile is the immutable, loaded grammar. Every field is either a small
// slice of structs/ints or a fsm.Automaton wrapping a compressor.Table, so
// the whole thing is safe to share read-only across concurrent parses.
type DataFile struct {
	Alphabet    *alphabet.Alphabet
	Forwards    *fsm.Automaton
	Backwards   *fsm.Automaton
	vertices    []Vertex
	nullEdges   [][]Edge
	charEdges   [][]Edge
	StartVertex int
	FinalVertex int
}

// Load decompresses and parses a data file from r, verifies its structural
// invariants, and builds the dense/compressed lookup tables the runtime
// needs. It is the only place the JSON/gzip wire format is known;
// everything downstream uses DataFile's accessors.
func Load(r io.Reader) (*DataFile, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, &errs.InvalidDataFileError{Reason: "not a gzip stream: " + err.Error()}
	}
	defer gz.Close()

	body, err := io.ReadAll(gz)
	if err != nil {
		return nil, &errs.InvalidDataFileError{Reason: "cannot decompress: " + err.Error()}
	}

	var raw rawDataFile
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &errs.InvalidDataFileError{Reason: "cannot parse JSON: " + err.Error()}
	}

	return build(&raw)
}

// LoadUncompressedJSON parses a bare JSON document with no gzip envelope.
// Tests use it to avoid shipping binary test data; Load is what the CLI
// and production data files use.
func LoadUncompressedJSON(r io.Reader) (*DataFile, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, &errs.InvalidDataFileError{Reason: "cannot read: " + err.Error()}
	}
	var raw rawDataFile
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &errs.InvalidDataFileError{Reason: "cannot parse JSON: " + err.Error()}
	}
	return build(&raw)
}

func build(raw *rawDataFile) (*DataFile, error) {
	if err := verify(raw); err != nil {
		return nil, err
	}

	forwardSymbolCount := maxTransitionColumn(raw.Forwards) + 1
	forwards, err := buildAutomaton(raw.Forwards, forwardSymbolCount)
	if err != nil {
		return nil, &errs.InvalidDataFileError{Reason: "forwards table: " + err.Error()}
	}

	backwardSymbolCount := len(raw.Forwards)
	backwards, err := buildAutomaton(raw.Backwards, backwardSymbolCount)
	if err != nil {
		return nil, &errs.InvalidDataFileError{Reason: "backwards table: " + err.Error()}
	}

	vertices := make([]Vertex, len(raw.Vertices))
	for i, v := range raw.Vertices {
		vertices[i] = Vertex{
			Type:        v.Type,
			Text:        v.Text,
			With:        v.With,
			SortKey:     v.SortKey,
			StackVertex: v.StackVertex,
			NotBranch:   v.NotBranch,
		}
	}

	nullEdges := make([][]Edge, len(raw.NullEdges))
	for i, es := range raw.NullEdges {
		nullEdges[i] = append([]Edge(nil), es...)
	}
	charEdges := make([][]Edge, len(raw.CharEdges))
	for i, es := range raw.CharEdges {
		charEdges[i] = append([]Edge(nil), es...)
	}

	return &DataFile{
		Alphabet:    alphabet.New(raw.InputToSymbol),
		Forwards:    forwards,
		Backwards:   backwards,
		vertices:    vertices,
		nullEdges:   nullEdges,
		charEdges:   charEdges,
		StartVertex: raw.StartVertex,
		FinalVertex: raw.FinalVertex,
	}, nil
}

// verify checks the minimum structural invariants: presence of
// start/final vertex, state 1 in both automata, state 0 of both automata
// being a non-accepting sink with no transition to another state, every
// transition target being a state of its own automaton, and
// null_edges/char_edges of equal length.
func verify(raw *rawDataFile) error {
	if len(raw.Forwards) <= fsm.InitialState {
		return &errs.InvalidDataFileError{Reason: "forwards table has no state 1"}
	}
	if len(raw.Backwards) <= fsm.InitialState {
		return &errs.InvalidDataFileError{Reason: "backwards table has no state 1"}
	}
	for _, states := range [][]rawState{raw.Forwards, raw.Backwards} {
		if states[fsm.SinkState].Accepts {
			return &errs.InvalidDataFileError{Reason: "state 0 must be non-accepting"}
		}
		for i, s := range states {
			for _, next := range s.Transitions {
				if next < 0 || next >= len(states) || (i == fsm.SinkState && next != fsm.SinkState) {
					return &errs.InvalidDataFileError{Reason: "transition target out of range, or out of state 0"}
				}
			}
		}
	}
	if raw.StartVertex <= 0 || raw.StartVertex >= len(raw.Vertices) {
		return &errs.InvalidDataFileError{Reason: "start_vertex is missing or out of range"}
	}
	if raw.FinalVertex <= 0 || raw.FinalVertex >= len(raw.Vertices) {
		return &errs.InvalidDataFileError{Reason: "final_vertex is missing or out of range"}
	}
	if len(raw.NullEdges) != len(raw.CharEdges) {
		return &errs.InvalidDataFileError{Reason: "null_edges and char_edges have different lengths"}
	}
	return nil
}

func maxTransitionColumn(states []rawState) int {
	max := 0
	for _, s := range states {
		for k := range s.Transitions {
			n, err := strconv.Atoi(k)
			if err == nil && n > max {
				max = n
			}
		}
	}
	return max
}

func buildAutomaton(states []rawState, symbolCount int) (*fsm.Automaton, error) {
	if symbolCount <= 0 {
		symbolCount = 1
	}
	dense := make([]int, len(states)*symbolCount)
	accepts := make([]bool, len(states))
	for i, s := range states {
		trans, err := s.transitionsAsInts()
		if err != nil {
			return nil, err
		}
		accepts[i] = bool(s.Accepts)
		for sym, next := range trans {
			if sym < 0 || sym >= symbolCount {
				continue
			}
			dense[i*symbolCount+sym] = next
		}
	}

	tab, err := compressor.CompressDense(dense, symbolCount)
	if err != nil {
		return nil, err
	}
	return fsm.NewAutomaton(tab, accepts, symbolCount), nil
}

// NullEdges returns the null_edges[e] slice: same-column, non-consuming
// transitions for edge-set e.
func (d *DataFile) NullEdges(e int) []Edge {
	if e < 0 || e >= len(d.nullEdges) {
		return nil
	}
	return d.nullEdges[e]
}

// CharEdges returns the char_edges[e] slice: column-advancing, one-symbol
// consuming transitions for edge-set e.
func (d *DataFile) CharEdges(e int) []Edge {
	if e < 0 || e >= len(d.charEdges) {
		return nil
	}
	return d.charEdges[e]
}

// EdgeSetCount returns the number of edge-sets (len(null_edges)).
func (d *DataFile) EdgeSetCount() int {
	return len(d.nullEdges)
}

// Vertex returns the vertex table entry for v. Vertex 0 is the reserved
// stack-floor sentinel; callers must not treat it as real.
func (d *DataFile) Vertex(v int) Vertex {
	if v < 0 || v >= len(d.vertices) {
		return Vertex{}
	}
	return d.vertices[v]
}

// VertexCount returns len(vertices), including the reserved index 0.
func (d *DataFile) VertexCount() int {
	return len(d.vertices)
}
