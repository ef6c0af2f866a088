package tester

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hoehrmann/demo-parselov/datafile"
	"github.com/hoehrmann/demo-parselov/resolve/tree"
)

// tinyJSON encodes a -> 'x' (code point 2 here, to keep the table tiny):
// start(1) --null--> vertex2 --char--> final(3).
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

// tinyInput is a single code point (2) that the tinyJSON alphabet maps to
// the symbol that drives the automaton from start to final.
const tinyInput = ""

func loadTinyDataFile(t *testing.T) *datafile.DataFile {
	t.Helper()
	df, err := datafile.LoadUncompressedJSON(strings.NewReader(tinyJSON))
	if err != nil {
		t.Fatal(err)
	}
	return df
}

func TestRunAcceptingFixturePasses(t *testing.T) {
	df := loadTinyDataFile(t)
	tester := &Tester{
		DataFile: df,
		Cases: []*TestCaseWithMetadata{
			{
				FilePath: "accept.json",
				Fixture: &Fixture{
					Input:  tinyInput,
					Accept: true,
				},
			},
		},
	}
	results := tester.Run()
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %v", len(results))
	}
	if results[0].Error != nil {
		t.Fatalf("unexpected error: %v", results[0].Error)
	}
}

func TestRunTreeMismatchReportsDiff(t *testing.T) {
	df := loadTinyDataFile(t)
	tester := &Tester{
		DataFile: df,
		Cases: []*TestCaseWithMetadata{
			{
				FilePath: "mismatch.json",
				Fixture: &Fixture{
					Input:  tinyInput,
					Accept: true,
					Tree: &tree.Tree{
						Name:  "wrong-name",
						Start: 0,
						End:   1,
					},
				},
			},
		},
	}
	results := tester.Run()
	if results[0].Error == nil {
		t.Fatal("expected a tree mismatch error")
	}
	if len(results[0].Diffs) != 1 {
		t.Fatalf("expected 1 diff, got %v", results[0].Diffs)
	}
}

func TestRunRejectionCheckedAgainstFirstBadOffset(t *testing.T) {
	df := loadTinyDataFile(t)
	tester := &Tester{
		DataFile: df,
		Cases: []*TestCaseWithMetadata{
			{
				FilePath: "reject.json",
				Fixture: &Fixture{
					Input:          "",
					Accept:         false,
					FirstBadOffset: 0,
				},
			},
		},
	}
	results := tester.Run()
	if results[0].Error != nil {
		t.Fatalf("unexpected error: %v", results[0].Error)
	}
}

func TestListTestCasesWalksDirectory(t *testing.T) {
	dir := t.TempDir()
	fixture := `{"input": "", "accept": true}`
	if err := os.WriteFile(filepath.Join(dir, "a.json"), []byte(fixture), 0o644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "b.json"), []byte(fixture), 0o644); err != nil {
		t.Fatal(err)
	}

	cases := ListTestCases(dir)
	if len(cases) != 2 {
		t.Fatalf("expected 2 cases, got %v", len(cases))
	}
	for _, c := range cases {
		if c.Error != nil {
			t.Errorf("unexpected parse error for %v: %v", c.FilePath, c.Error)
		}
	}
}
