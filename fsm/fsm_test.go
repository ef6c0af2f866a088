package fsm

import (
	"reflect"
	"testing"

	"github.com/hoehrmann/demo-parselov/compressor"
)

// buildAutomaton constructs an automaton with len(rows[0]) symbol columns
// over states 0 (sink) .. len(accepts)-1 from a row-major dense
// transition table.
func buildAutomaton(t *testing.T, rows [][]int, accepts []bool) *Automaton {
	t.Helper()
	cols := len(rows[0])
	flat := make([]int, 0, len(rows)*cols)
	for _, r := range rows {
		flat = append(flat, r...)
	}
	tab := &compressor.DenseTable{Entries: flat, Rows: len(rows), Cols: cols}
	return NewAutomaton(tab, accepts, cols)
}

func TestRunForwardAccepts(t *testing.T) {
	// state 1 --a(sym1)--> state 2 (accepting); state 2 is a dead end.
	fwd := buildAutomaton(t, [][]int{
		{0, 0}, // state 0: sink
		{0, 2}, // state 1: on symbol 1, go to state 2
		{0, 0}, // state 2: no outgoing edges
	}, []bool{false, false, true})

	res := RunForward(fwd, []int{1})
	want := []int{1, 2}
	if !reflect.DeepEqual(res.States, want) {
		t.Fatalf("States = %v, want %v", res.States, want)
	}
	if !res.Accepted {
		t.Fatalf("Accepted = false, want true")
	}
	if res.FirstBadOffset != 1 {
		t.Fatalf("FirstBadOffset = %v, want 1 (no sink hit)", res.FirstBadOffset)
	}
}

func TestRunForwardRejectsImmediately(t *testing.T) {
	fwd := buildAutomaton(t, [][]int{
		{0, 0},
		{0, 2},
		{0, 0},
	}, []bool{false, false, true})

	// Symbol 0 is the sink symbol; state 1 has no entry for column 0, so
	// Next falls back to SinkState immediately and the forward state
	// becomes 0 on the very first symbol.
	res := RunForward(fwd, []int{0})
	if res.Accepted {
		t.Fatalf("Accepted = true, want false")
	}
	if res.FirstBadOffset != 0 {
		t.Fatalf("FirstBadOffset = %v, want 0", res.FirstBadOffset)
	}
}

func TestRunForwardEmptyInput(t *testing.T) {
	fwd := buildAutomaton(t, [][]int{
		{0},
		{0},
	}, []bool{false, true})

	res := RunForward(fwd, nil)
	if len(res.States) != 1 || res.States[0] != InitialState {
		t.Fatalf("States = %v, want [%v]", res.States, InitialState)
	}
	if !res.Accepted {
		t.Fatalf("empty input should accept iff forwards[1].accepts")
	}
	if res.FirstBadOffset != 0 {
		t.Fatalf("FirstBadOffset = %v, want 0 (len(input))", res.FirstBadOffset)
	}
}

func TestRunBackwardLength(t *testing.T) {
	// A trivial backward automaton: everything maps back to state 1.
	bwd := buildAutomaton(t, [][]int{
		{0, 0, 0},
		{0, 1, 1},
	}, []bool{false, true})

	forwardStates := []int{1, 1, 1} // n = 2
	edgeIDs := RunBackward(bwd, forwardStates)
	if len(edgeIDs) != len(forwardStates) {
		t.Fatalf("len(edgeIDs) = %v, want %v", len(edgeIDs), len(forwardStates))
	}
	for i, id := range edgeIDs {
		if id != 1 {
			t.Errorf("edgeIDs[%v] = %v, want 1", i, id)
		}
	}
}
