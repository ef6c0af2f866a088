package alphabet

import "testing"

func TestCodePointToSymbol(t *testing.T) {
	// index 0 is the sentinel sink entry, as DataFile arrays require.
	tab := []int{0, 0, 1, 2, 0}
	a := New(tab)

	tests := []struct {
		cp   rune
		want int
	}{
		{0, 0},
		{1, 0}, // explicitly mapped to 0
		{2, 1},
		{3, 2},
		{4, 0}, // explicitly mapped to 0
		{5, 0}, // out of range
		{-1, 0},
	}
	for _, tt := range tests {
		if got := a.CodePointToSymbol(tt.cp); got != tt.want {
			t.Errorf("CodePointToSymbol(%v) = %v, want %v", tt.cp, got, tt.want)
		}
	}
}

func TestSymbols(t *testing.T) {
	tab := []int{0, 1, 2}
	a := New(tab)
	got := a.Symbols([]rune{1, 2, 9})
	want := []int{1, 2, 0}
	if len(got) != len(want) {
		t.Fatalf("len = %v, want %v", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Symbols()[%v] = %v, want %v", i, got[i], want[i])
		}
	}
}
