package edgegraph

import (
	"strings"
	"testing"

	"github.com/hoehrmann/demo-parselov/datafile"
)

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

func loadTiny(t *testing.T) *datafile.DataFile {
	t.Helper()
	df, err := datafile.LoadUncompressedJSON(strings.NewReader(tinyJSON))
	if err != nil {
		t.Fatal(err)
	}
	return df
}

func TestBuildAcceptsMatchingInput(t *testing.T) {
	df := loadTiny(t)
	stream, accepted, _ := Build(df, []rune{2})
	if !accepted {
		t.Fatal("expected input \"x\" to be accepted")
	}
	if stream.Len() != 1 {
		t.Fatalf("Len() = %v, want 1", stream.Len())
	}
	if len(stream.EdgeIDs) != 2 {
		t.Fatalf("len(EdgeIDs) = %v, want 2", len(stream.EdgeIDs))
	}
}

func TestBuildRejectsMismatchedInput(t *testing.T) {
	df := loadTiny(t)
	_, accepted, firstBad := Build(df, []rune{1})
	if accepted {
		t.Fatal("expected input mapping to the sink symbol to be rejected")
	}
	if firstBad != 0 {
		t.Fatalf("firstBad = %v, want 0", firstBad)
	}
}

func TestSuccessorsAtFollowsNullThenChar(t *testing.T) {
	df := loadTiny(t)
	stream, accepted, _ := Build(df, []rune{2})
	if !accepted {
		t.Fatal("expected acceptance")
	}
	succ := stream.SuccessorsAt(0, 1)
	if len(succ) != 1 || succ[0].To != 2 || succ[0].IsChar {
		t.Fatalf("SuccessorsAt(0, 1) = %+v, want one null successor to vertex 2", succ)
	}
	succ2 := stream.SuccessorsAt(0, 2)
	if len(succ2) != 1 || succ2[0].To != 3 || !succ2[0].IsChar || succ2[0].Offset != 1 {
		t.Fatalf("SuccessorsAt(0, 2) = %+v, want one char successor to vertex 3 at offset 1", succ2)
	}
}
