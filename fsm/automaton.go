// Package fsm runs the two finite-state passes over a symbol stream: a
// forwards transducer recording per-position state, then a backwards
// transducer turning that trace into edge-set IDs. Automaton's shape
// follows nihei9-vartan's grammar/lexical/dfa.DFA: a dense table indexed
// by state, plus an accepting flag per state, with state/vertex 0
// reserved as the non-accepting sink.
package fsm

import "github.com/hoehrmann/demo-parselov/compressor"

// SinkState is the reserved, non-accepting state of both automata. Looking
// it up never produces an outgoing transition; the data file's forwards[0]
// and backwards[0] rows must be all-sink, which datafile.Load verifies.
const SinkState = 0

// InitialState is the state both automata start in: state 1 is always the
// initial state of both forwards and backwards.
const InitialState = 1

// Automaton is the read-only, shared-safe handle to one of the two loaded
// transition tables (forwards or backwards). Its column alphabet differs
// by direction: forwards is indexed by input symbol, backwards by
// forward-state ID, but the lookup shape is identical, so one type serves
// both (the same idiom nihei9-vartan's parsing table uses for Action and
// GoTo: one flat array, two different column spaces).
type Automaton struct {
	table       compressor.Table
	accepts     []bool
	symbolCount int
}

// NewAutomaton wraps an already-loaded transition table and per-state
// accept flags. len(accepts) and symbolCount must match table.Shape();
// NewAutomaton does not re-verify this, since datafile.Load already
// verifies that both automata have at least state 1.
func NewAutomaton(table compressor.Table, accepts []bool, symbolCount int) *Automaton {
	return &Automaton{table: table, accepts: accepts, symbolCount: symbolCount}
}

// Next returns the state (or edge-set ID, for the backward pass) reached
// from state under symbol, treating any entry absent from the original
// table as SinkState: a missing entry means "go to the sink".
func (a *Automaton) Next(state, symbol int) int {
	if symbol < 0 || symbol >= a.symbolCount {
		return SinkState
	}
	return a.table.Lookup(state, symbol)
}

// Accepts reports the accepting flag of state. Index 0 (the sink) is
// always non-accepting by construction.
func (a *Automaton) Accepts(state int) bool {
	if state < 0 || state >= len(a.accepts) {
		return false
	}
	return a.accepts[state]
}

// StateCount returns the number of rows (including the sentinel row 0).
func (a *Automaton) StateCount() int {
	rows, _ := a.table.Shape()
	return rows
}
