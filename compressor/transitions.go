package compressor

import "fmt"

// EmptyTransition is the value NewTransitionTable packs in for transitions
// absent from the original dense table. The forwards/backwards automata and
// edge-set IDs all use 0 as "no such state", so callers always construct
// with EmptyValue 0.
const EmptyTransition = 0

// Table is the read-only accessor a loaded DataFile uses for its
// transition lookups: forwards[state].transitions[symbol] and
// backwards[state].transitions[forwardState]. It hides whether the table
// is stored as a plain dense array or in a packed form; datafile.Load
// always stores the packed form built by CompressDense.
type Table interface {
	// Lookup returns the entry at (row, col), or EmptyTransition if the
	// original table had no entry there. Indexes outside the table's
	// declared shape are a caller bug, not a recoverable condition, since
	// DataFile verifies table shape once at load time.
	Lookup(row, col int) int
	Shape() (rows, cols int)
}

// DenseTable is a Table backed by the uncompressed row-major array, with
// no packing at all. datafile.Load does not use it; it suits small tables
// built directly in code.
type DenseTable struct {
	Entries []int
	Rows    int
	Cols    int
}

func (t *DenseTable) Lookup(row, col int) int {
	return t.Entries[row*t.Cols+col]
}

func (t *DenseTable) Shape() (int, int) {
	return t.Rows, t.Cols
}

// compressorTable adapts a Compressor (which reports out-of-range errors)
// to Table's caller contract (which trusts the shape was verified once,
// at load time, and never re-checks it on the hot path).
type compressorTable struct {
	c Compressor
}

func (t *compressorTable) Lookup(row, col int) int {
	v, err := t.c.Lookup(row, col)
	if err != nil {
		// DataFile.verify already checked the declared shape against
		// row/col counts; reaching here means a caller indexed past a
		// table it never verified, which is a programming error.
		panic(fmt.Sprintf("compressor: %v", err))
	}
	return v
}

func (t *compressorTable) Shape() (int, int) {
	return t.c.OriginalTableSize()
}

// WrapCompressor adapts an already populated UniqueEntriesTable or
// RowDisplacementTable into a Table. The data file format has no field for
// a packed table, so datafile.Load does not use it.
func WrapCompressor(c Compressor) Table {
	return &compressorTable{c: c}
}

// CompressDense packs a dense row-major transition table using the same
// two-stage scheme nihei9-vartan's lexical compiler applies at compression
// level 2: first fold duplicate rows (UniqueEntriesTable), then pack the
// remaining distinct rows with row displacement (RowDisplacementTable).
// datafile.Load packs every forwards/backwards transition table with it,
// and tests exercise the round trip.
func CompressDense(entries []int, colCount int) (Table, error) {
	orig, err := NewOriginalTable(entries, colCount)
	if err != nil {
		return nil, err
	}

	ueTab := NewUniqueEntriesTable()
	if err := ueTab.Compress(orig); err != nil {
		return nil, err
	}

	ueOrig, err := NewOriginalTable(ueTab.UniqueEntries, ueTab.OriginalColCount)
	if err != nil {
		return nil, err
	}

	rdTab := NewRowDisplacementTable(EmptyTransition)
	if err := rdTab.Compress(ueOrig); err != nil {
		return nil, err
	}

	return &twoStageTable{rowNums: ueTab.RowNums, rows: ueTab.OriginalRowCount, cols: ueTab.OriginalColCount, rd: rdTab}, nil
}

// twoStageTable is the Lookup-side counterpart of CompressDense: row dedup
// followed by row-displacement packing. It implements Table directly
// (rather than composing two compressorTable adapters) so a lookup is one
// dedup indirection plus one displacement lookup, not two panic-capable
// Compressor calls.
type twoStageTable struct {
	rowNums []int
	rows    int
	cols    int
	rd      *RowDisplacementTable
}

func (t *twoStageTable) Lookup(row, col int) int {
	v, err := t.rd.Lookup(t.rowNums[row], col)
	if err != nil {
		panic(fmt.Sprintf("compressor: %v", err))
	}
	return v
}

func (t *twoStageTable) Shape() (int, int) {
	return t.rows, t.cols
}
