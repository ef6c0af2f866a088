// Package tester runs fixture-driven regression tests against a DataFile,
// following nihei9-vartan's tester.Tester/TestResult directory-walking
// idiom. Fixtures here are plain JSON describing input, expected
// acceptance, and (optionally) an expected parse tree in the same
// `[name, children, start, end]` shape the resolvers themselves emit,
// rather than grammar-source test files requiring a bootstrap parser of
// their own.
package tester

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hoehrmann/demo-parselov/datafile"
	"github.com/hoehrmann/demo-parselov/edgegraph"
	"github.com/hoehrmann/demo-parselov/resolve/backtrack"
	"github.com/hoehrmann/demo-parselov/resolve/parallel"
	"github.com/hoehrmann/demo-parselov/resolve/tree"
)

// Fixture is one JSON test-case document.
type Fixture struct {
	Description    string     `json:"description"`
	Input          string     `json:"input"`
	Resolver       string     `json:"resolver"` // "backtrack" (default) or "parallel"
	Accept         bool       `json:"accept"`
	FirstBadOffset int        `json:"first_bad_offset"`
	Tree           *tree.Tree `json:"tree"`
}

// TestCaseWithMetadata pairs a parsed Fixture with the file it came from,
// or the error encountered reading/parsing it.
type TestCaseWithMetadata struct {
	Fixture  *Fixture
	FilePath string
	Error    error
}

// ListTestCases walks testPath (a file or a directory tree) collecting
// every "*.json" fixture found.
func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{{FilePath: testPath, Error: err}}
	}
	if !fi.IsDir() {
		f, err := parseFixture(testPath)
		return []*TestCaseWithMetadata{{Fixture: f, FilePath: testPath, Error: err}}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{{FilePath: testPath, Error: err}}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		p := filepath.Join(testPath, e.Name())
		if e.IsDir() || strings.HasSuffix(e.Name(), ".json") {
			cases = append(cases, ListTestCases(p)...)
		}
	}
	return cases
}

func parseFixture(path string) (*Fixture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f Fixture
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return &f, nil
}

// TestResult is one fixture's outcome.
type TestResult struct {
	TestCasePath string
	Error        error
	Diffs        []*tree.TreeDiff
}

func (r *TestResult) String() string {
	if r.Error == nil {
		return fmt.Sprintf("Passed %v", r.TestCasePath)
	}
	const indent1 = "    "
	const indent2 = indent1 + indent1

	msgLines := strings.Split(r.Error.Error(), "\n")
	msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
	if len(r.Diffs) == 0 {
		return msg
	}
	var diffLines []string
	for _, d := range r.Diffs {
		diffLines = append(diffLines, d.Message)
		diffLines = append(diffLines, fmt.Sprintf("%vexpected path: %v", indent1, d.ExpectedPath))
		diffLines = append(diffLines, fmt.Sprintf("%vactual path:   %v", indent1, d.ActualPath))
	}
	return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(diffLines, "\n"+indent2))
}

// Tester runs every fixture in Cases against DataFile.
type Tester struct {
	DataFile *datafile.DataFile
	Cases    []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, runTest(t.DataFile, c))
	}
	return rs
}

func runTest(df *datafile.DataFile, c *TestCaseWithMetadata) *TestResult {
	if c.Error != nil {
		return &TestResult{TestCasePath: c.FilePath, Error: c.Error}
	}
	f := c.Fixture

	stream, accepted, firstBad := edgegraph.Build(df, []rune(f.Input))
	if accepted != f.Accept {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("acceptance mismatch: expected %v, got %v", f.Accept, accepted),
		}
	}
	if !accepted {
		if firstBad != f.FirstBadOffset {
			return &TestResult{
				TestCasePath: c.FilePath,
				Error:        fmt.Errorf("first_bad_offset mismatch: expected %v, got %v", f.FirstBadOffset, firstBad),
			}
		}
		return &TestResult{TestCasePath: c.FilePath}
	}

	var actual *tree.Tree
	if f.Resolver == "parallel" {
		res, err := parallel.Resolve(stream)
		if err != nil {
			return &TestResult{TestCasePath: c.FilePath, Error: err}
		}
		actual = res.Tree
	} else {
		t, err := backtrack.Resolve(stream)
		if err != nil {
			return &TestResult{TestCasePath: c.FilePath, Error: err}
		}
		actual = t
	}

	if f.Tree == nil {
		return &TestResult{TestCasePath: c.FilePath}
	}

	actual.Fill()
	f.Tree.Fill()
	diffs := tree.DiffTree(f.Tree, actual)
	if len(diffs) > 0 {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("output mismatch"),
			Diffs:        diffs,
		}
	}
	return &TestResult{TestCasePath: c.FilePath}
}
