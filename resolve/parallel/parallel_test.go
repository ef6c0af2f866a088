package parallel

import (
	"strings"
	"testing"

	"github.com/hoehrmann/demo-parselov/datafile"
	"github.com/hoehrmann/demo-parselov/edgegraph"
)

// tinyJSON: a -> 'x'.
const tinyJSON = `{
  "input_to_symbol": [0, 0, 1],
  "forwards": [
    {"transitions": {}, "accepts": false},
    {"transitions": {"1": 2}, "accepts": false},
    {"transitions": {}, "accepts": true}
  ],
  "backwards": [
    {"transitions": {}, "accepts": false},
    {"transitions": {}, "accepts": false}
  ],
  "vertices": [
    {},
    {"type": "start", "text": "a", "with": 3},
    {},
    {"type": "final", "text": "a", "with": 1}
  ],
  "null_edges": [
    [[1, 2]],
    []
  ],
  "char_edges": [
    [[2, 3]],
    []
  ],
  "start_vertex": 1,
  "final_vertex": 3
}`

func TestResolveAcceptsSingleProduction(t *testing.T) {
	df, err := datafile.LoadUncompressedJSON(strings.NewReader(tinyJSON))
	if err != nil {
		t.Fatal(err)
	}
	stream, accepted, _ := edgegraph.Build(df, []rune{2})
	if !accepted {
		t.Fatal("expected acceptance")
	}

	res, err := Resolve(stream)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Tree.Name != "a" {
		t.Errorf("Tree.Name = %q, want %q", res.Tree.Name, "a")
	}
	if res.Ambiguous != nil {
		t.Errorf("expected no ambiguity, got %v", res.Ambiguous)
	}
}

// nestedJSON: a -> b, b -> 'x' (vertex1/6 bracket a, vertex3/4 bracket
// nested b around the single char edge).
const nestedJSON = `{
  "input_to_symbol": [0, 0, 1],
  "forwards": [
    {"transitions": {}, "accepts": false},
    {"transitions": {"1": 2}, "accepts": false},
    {"transitions": {}, "accepts": true}
  ],
  "backwards": [
    {"transitions": {}, "accepts": false},
    {"transitions": {}, "accepts": false}
  ],
  "vertices": [
    {},
    {"type": "start", "text": "a", "with": 6},
    {"type": "start", "text": "b", "with": 5},
    {},
    {},
    {"type": "final", "text": "b", "with": 2},
    {"type": "final", "text": "a", "with": 1}
  ],
  "null_edges": [
    [[1, 2], [2, 3]],
    [[4, 5], [5, 6]]
  ],
  "char_edges": [
    [[3, 4]],
    []
  ],
  "start_vertex": 1,
  "final_vertex": 6
}`

func TestResolveAcceptsNestedProduction(t *testing.T) {
	df, err := datafile.LoadUncompressedJSON(strings.NewReader(nestedJSON))
	if err != nil {
		t.Fatal(err)
	}
	stream, accepted, _ := edgegraph.Build(df, []rune{2})
	if !accepted {
		t.Fatal("expected acceptance")
	}

	res, err := Resolve(stream)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Tree.Name != "a" {
		t.Fatalf("Tree.Name = %q, want %q", res.Tree.Name, "a")
	}
	if len(res.Tree.Children) != 1 || res.Tree.Children[0].Name != "b" {
		t.Fatalf("expected one nested child %q, got %+v", "b", res.Tree.Children)
	}
}
