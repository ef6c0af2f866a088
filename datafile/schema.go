// Package datafile loads the precompiled grammar tables the parser runtime
// consumes: an immutable, read-only DataFile built from a gzip-compressed
// JSON document. The JSON shape is one object per table, arrays indexed by
// ID with a reserved, unused entry at index 0.
package datafile

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// VertexType is one of the grammar-graph vertex kinds. The zero value
// (empty string) means "no type", the shape an ordinary mid-production
// vertex has.
type VertexType string

const (
	VertexNone  VertexType = ""
	VertexStart VertexType = "start"
	VertexFinal VertexType = "final"
	VertexIf    VertexType = "if"
	VertexFi    VertexType = "fi"
)

// NotBranch marks a vertex that lies on the excluded alternative of its
// enclosing if/fi guard (the "not" side of an and-not construct, e.g. the
// PITarget "xml" inside `<?xml?>`'s exclusion). A predecessor of a `fi`
// vertex that carries this flag represents the guarded-against
// alternative having matched, so the pairing is treated as invalid the
// same way an unmatched start/final bracket is.

// rawVertex is the JSON shape of one entry in the "vertices" array.
type rawVertex struct {
	Type        VertexType `json:"type,omitempty"`
	Text        string     `json:"text,omitempty"`
	With        int        `json:"with,omitempty"`
	SortKey     int        `json:"sort_key,omitempty"`
	StackVertex int        `json:"stack_vertex,omitempty"`
	NotBranch   bool       `json:"not_branch,omitempty"`
}

// Edge is a (from, to) vertex pair, serialized as a two-element JSON array
// ("[from, to]") rather than as an object.
type Edge struct {
	From int
	To   int
}

func (e Edge) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{e.From, e.To})
}

func (e *Edge) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("edge must be a [from, to] pair: %w", err)
	}
	e.From, e.To = pair[0], pair[1]
	return nil
}

// acceptFlag accepts both JSON bool and JSON int encodings of an "accepts"
// field, since data files in the wild use either shape.
type acceptFlag bool

func (a *acceptFlag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*a = acceptFlag(b)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("accepts must be a bool or int: %w", err)
	}
	*a = acceptFlag(n != 0)
	return nil
}

// rawState is the JSON shape of one entry in the "forwards" or "backwards"
// array: a sparse symbol-to-state transition map plus an accepting flag.
type rawState struct {
	Transitions map[string]int `json:"transitions"`
	Accepts     acceptFlag     `json:"accepts"`
}

// transitionsAsInts converts the string-keyed JSON transition map (JSON
// object keys are always strings, so the generator encodes symbol/state
// IDs this way) back to int keys, failing on anything that isn't an
// integer. Negative keys pass through here; buildAutomaton ignores them.
func (s *rawState) transitionsAsInts() (map[int]int, error) {
	out := make(map[int]int, len(s.Transitions))
	for k, v := range s.Transitions {
		sym, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("transition key %q is not an integer: %w", k, err)
		}
		out[sym] = v
	}
	return out, nil
}

// rawDataFile is the top-level JSON document, after gzip decompression.
type rawDataFile struct {
	InputToSymbol []int       `json:"input_to_symbol"`
	Forwards      []rawState  `json:"forwards"`
	Backwards     []rawState  `json:"backwards"`
	Vertices      []rawVertex `json:"vertices"`
	NullEdges     [][]Edge    `json:"null_edges"`
	CharEdges     [][]Edge    `json:"char_edges"`
	StartVertex   int         `json:"start_vertex"`
	FinalVertex   int         `json:"final_vertex"`
}
