package compressor

import "testing"

func TestCompressDense(t *testing.T) {
	// Two states share the same transition row; one state differs.
	entries := []int{
		1, 2, 0,
		1, 2, 0,
		0, 3, 4,
	}
	tab, err := CompressDense(entries, 3)
	if err != nil {
		t.Fatal(err)
	}
	rows, cols := tab.Shape()
	if rows != 3 || cols != 3 {
		t.Fatalf("Shape() = (%v, %v), want (3, 3)", rows, cols)
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			want := entries[row*3+col]
			if got := tab.Lookup(row, col); got != want {
				t.Errorf("Lookup(%v, %v) = %v, want %v", row, col, got, want)
			}
		}
	}
}

func TestWrapCompressorDense(t *testing.T) {
	entries := []int{1, 0, 0, 2}
	orig, err := NewOriginalTable(entries, 2)
	if err != nil {
		t.Fatal(err)
	}
	ue := NewUniqueEntriesTable()
	if err := ue.Compress(orig); err != nil {
		t.Fatal(err)
	}
	tab := WrapCompressor(ue)
	if got := tab.Lookup(1, 1); got != 2 {
		t.Errorf("Lookup(1, 1) = %v, want 2", got)
	}
}
