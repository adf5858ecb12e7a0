package sniff

import "strings"

// Table is the normalized in-memory form of one parsed source file.
// Columns are ordered exactly as they appeared in the file; every row has
// len(Columns) cells. An empty cell string means the value is absent.
type Table struct {
	Columns []string
	Rows    [][]string
}

// naTokens are literal strings that mean "no value" in third-party exports
var naTokens = map[string]bool{
	"nan":  true,
	"null": true,
	"none": true,
	"n/a":  true,
	"#n/a": true,
}

// NumRows returns the number of data rows
func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// NumColumns returns the number of columns
func (t *Table) NumColumns() int {
	if t == nil {
		return 0
	}
	return len(t.Columns)
}

// IsEmpty reports whether the table has no usable data
func (t *Table) IsEmpty() bool {
	return t.NumRows() == 0 || t.NumColumns() == 0
}

// ColumnIndex returns the position of a column by exact name, or -1
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col) and whether a value is present.
// Out-of-range access and empty cells both report absence.
func (t *Table) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Columns) {
		return "", false
	}
	v := t.Rows[row][col]
	if v == "" {
		return "", false
	}
	return v, true
}

// Normalize cleans a freshly parsed table in place:
// column names trimmed, string cells trimmed, textual NA tokens converted
// to absent, then all-empty rows and all-empty columns removed.
func (t *Table) Normalize() {
	if t == nil {
		return
	}

	for i, col := range t.Columns {
		t.Columns[i] = strings.TrimSpace(col)
	}

	// Pad or truncate ragged rows so every row matches the header width
	width := len(t.Columns)
	for i, row := range t.Rows {
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			t.Rows[i] = padded
		} else if len(row) > width {
			t.Rows[i] = row[:width]
		}
	}

	for _, row := range t.Rows {
		for j, cell := range row {
			cell = strings.TrimSpace(cell)
			if naTokens[strings.ToLower(cell)] {
				cell = ""
			}
			row[j] = cell
		}
	}

	t.dropEmptyRows()
	t.dropEmptyColumns()
}

func (t *Table) dropEmptyRows() {
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		empty := true
		for _, cell := range row {
			if cell != "" {
				empty = false
				break
			}
		}
		if !empty {
			kept = append(kept, row)
		}
	}
	t.Rows = kept
}

func (t *Table) dropEmptyColumns() {
	keep := make([]bool, len(t.Columns))
	for j := range t.Columns {
		for _, row := range t.Rows {
			if j < len(row) && row[j] != "" {
				keep[j] = true
				break
			}
		}
	}

	var cols []string
	for j, col := range t.Columns {
		if keep[j] {
			cols = append(cols, col)
		}
	}

	// Nothing to remove
	if len(cols) == len(t.Columns) {
		return
	}

	for i, row := range t.Rows {
		var cells []string
		for j, cell := range row {
			if keep[j] {
				cells = append(cells, cell)
			}
		}
		t.Rows[i] = cells
	}
	t.Columns = cols
}

// Merge appends another table's rows, aligning columns by name and adding
// any columns this table does not have yet. Used when a spreadsheet's data
// is spread over several sheets.
func (t *Table) Merge(other *Table) {
	if other == nil || other.IsEmpty() {
		return
	}

	colIdx := make(map[string]int, len(t.Columns))
	for i, col := range t.Columns {
		colIdx[col] = i
	}
	for _, col := range other.Columns {
		if _, ok := colIdx[col]; !ok {
			colIdx[col] = len(t.Columns)
			t.Columns = append(t.Columns, col)
			for i, row := range t.Rows {
				t.Rows[i] = append(row, "")
			}
		}
	}

	for _, row := range other.Rows {
		merged := make([]string, len(t.Columns))
		for j, col := range other.Columns {
			if j < len(row) {
				merged[colIdx[col]] = row[j]
			}
		}
		t.Rows = append(t.Rows, merged)
	}
}
