// Package alphabet maps input code points to the small symbol indices the
// precompiled automata operate on. The lookup table itself is owned by
// datafile.DataFile; this package is the read-only accessor over it, in the
// same spirit as nihei9-vartan's ucd package wrapping dense Unicode property
// tables with a single lookup function and an explicit default for misses.
package alphabet

// SinkSymbol is the reserved symbol for "unrecognized code point". It is
// produced whenever a code point falls outside the map, or the map
// explicitly assigns it symbol 0.
const SinkSymbol = 0

// Alphabet wraps the input_to_symbol table of a DataFile: a dense array
// indexed by code point, 0 .. len(Table)-1, yielding a symbol index.
type Alphabet struct {
	table []int
}

// New wraps an already-loaded input_to_symbol table. The table is not
// copied; callers must treat it as immutable once wrapped.
func New(inputToSymbol []int) *Alphabet {
	return &Alphabet{table: inputToSymbol}
}

// CodePointToSymbol maps a Unicode code point to a symbol index. A code
// point beyond the table's range maps to SinkSymbol, as does any code point
// whose mapped entry is explicitly 0.
func (a *Alphabet) CodePointToSymbol(cp rune) int {
	if cp < 0 || int(cp) >= len(a.table) {
		return SinkSymbol
	}
	return a.table[cp]
}

// Symbols converts a sequence of code points (e.g. from []rune(input)) into
// the symbol stream ForwardPass consumes.
func (a *Alphabet) Symbols(codePoints []rune) []int {
	syms := make([]int, len(codePoints))
	for i, cp := range codePoints {
		syms[i] = a.CodePointToSymbol(cp)
	}
	return syms
}
