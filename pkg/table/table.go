package table

import "strings"

// Table is an immutable, ordered snapshot of one tabular source (one sheet
// tab or one CSV file). Header order and row order are preserved exactly as
// read; nothing is sorted or deduplicated here.
type Table struct {
	headers []string
	index   map[string]int
	cells   [][]string
	ragged  []int
}

// New builds a Table from a header row and data records. Ragged records are
// tolerated the way spreadsheet CSV exports produce them: short records are
// padded with empty cells, long records are truncated. The indexes of ragged
// records are retained so callers can report them.
func New(headers []string, records [][]string) *Table {
	hs := make([]string, len(headers))
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		hs[i] = h
		if _, ok := idx[h]; !ok {
			idx[h] = i
		}
	}

	cells := make([][]string, len(records))
	var ragged []int
	for i, rec := range records {
		if len(rec) != len(hs) {
			ragged = append(ragged, i)
		}
		row := make([]string, len(hs))
		copy(row, rec)
		cells[i] = row
	}

	return &Table{headers: hs, index: idx, cells: cells, ragged: ragged}
}

// Headers returns a copy of the header row in source order.
func (t *Table) Headers() []string {
	out := make([]string, len(t.headers))
	copy(out, t.headers)
	return out
}

// HasHeader reports whether the named column exists. Header matching is
// case-sensitive.
func (t *Table) HasHeader(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of data rows (the header row is not counted).
func (t *Table) Len() int {
	return len(t.cells)
}

// Row returns a view of the i-th data row. i is zero-based and must be in
// range [0, Len).
func (t *Table) Row(i int) Row {
	return Row{table: t, pos: i}
}

// RaggedRows returns the zero-based indexes of records whose cell count did
// not match the header row.
func (t *Table) RaggedRows() []int {
	out := make([]int, len(t.ragged))
	copy(out, t.ragged)
	return out
}

// Renamed returns a copy of the table with headers renamed according to the
// mapping (old name → new name). Headers absent from the mapping are kept
// unchanged. Cell data is shared with the receiver, which is safe because
// tables are never mutated after construction.
func (t *Table) Renamed(mapping map[string]string) *Table {
	if len(mapping) == 0 {
		return t
	}

	hs := make([]string, len(t.headers))
	idx := make(map[string]int, len(t.headers))
	for i, h := range t.headers {
		if renamed, ok := mapping[h]; ok {
			h = renamed
		}
		hs[i] = h
		if _, ok := idx[h]; !ok {
			idx[h] = i
		}
	}

	return &Table{headers: hs, index: idx, cells: t.cells, ragged: t.ragged}
}

// Row is a read-only view of one data row. The zero value is not usable; rows
// are obtained from Table.Row.
type Row struct {
	table *Table
	pos   int
}

// Index returns the zero-based position of the row among data rows.
func (r Row) Index() int {
	return r.pos
}

// Get returns the cell under the named header with surrounding whitespace
// trimmed. Unknown headers yield an empty string, which keeps callers
// forward-compatible with sheets that carry extra columns.
func (r Row) Get(name string) string {
	i, ok := r.table.index[name]
	if !ok {
		return ""
	}
	return strings.TrimSpace(r.table.cells[r.pos][i])
}

// IsEmpty reports whether every cell in the row is blank.
func (r Row) IsEmpty() bool {
	for _, c := range r.table.cells[r.pos] {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
