package datafile

import (
	"bytes"
	"compress/gzip"
	"strings"
	"testing"
)

// tinyDataFileJSON describes a grammar matching the single non-terminal
// "a" -> 'x': start(1) --null--> vertex2 --char 'x'--> final(3).
const tinyDataFileJSON = `{
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
    {"type": "", "text": ""},
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

func gzipString(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(s)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadGzip(t *testing.T) {
	blob := gzipString(t, tinyDataFileJSON)
	df, err := Load(bytes.NewReader(blob))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if df.StartVertex != 1 || df.FinalVertex != 3 {
		t.Fatalf("start/final = %v/%v, want 1/3", df.StartVertex, df.FinalVertex)
	}
	if got := df.Vertex(1).Text; got != "a" {
		t.Errorf("Vertex(1).Text = %q, want %q", got, "a")
	}
	if df.Vertex(1).With != 3 {
		t.Errorf("Vertex(1).With = %v, want 3", df.Vertex(1).With)
	}
	if df.EdgeSetCount() != 2 {
		t.Errorf("EdgeSetCount() = %v, want 2", df.EdgeSetCount())
	}
	if got := df.CharEdges(0); len(got) != 1 || got[0].From != 2 || got[0].To != 3 {
		t.Errorf("CharEdges(0) = %v, want [{2 3}]", got)
	}
}

func TestLoadUncompressedJSON(t *testing.T) {
	df, err := LoadUncompressedJSON(strings.NewReader(tinyDataFileJSON))
	if err != nil {
		t.Fatalf("LoadUncompressedJSON: %v", err)
	}
	if !df.Forwards.Accepts(2) {
		t.Errorf("forwards state 2 should accept")
	}
	if df.Forwards.Next(1, 1) != 2 {
		t.Errorf("forwards.Next(1, 1) = %v, want 2", df.Forwards.Next(1, 1))
	}
}

func TestLoadRejectsMissingStartVertex(t *testing.T) {
	bad := strings.Replace(tinyDataFileJSON, `"start_vertex": 1`, `"start_vertex": 0`, 1)
	_, err := LoadUncompressedJSON(strings.NewReader(bad))
	if err == nil {
		t.Fatal("expected InvalidDataFileError, got nil")
	}
}

func TestLoadRejectsMismatchedEdgeTables(t *testing.T) {
	bad := `{
  "input_to_symbol": [0],
  "forwards": [{"transitions": {}, "accepts": false}, {"transitions": {}, "accepts": true}],
  "backwards": [{"transitions": {}, "accepts": false}, {"transitions": {}, "accepts": false}],
  "vertices": [{}, {"type": "start", "with": 2}, {"type": "final", "with": 1}],
  "null_edges": [[]],
  "char_edges": [[], []],
  "start_vertex": 1,
  "final_vertex": 2
}`
	_, err := LoadUncompressedJSON(strings.NewReader(bad))
	if err == nil {
		t.Fatal("expected InvalidDataFileError for mismatched edge table lengths, got nil")
	}
}
