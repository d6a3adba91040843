package dataset

import (
	"strconv"
	"strings"
)

// Dataset is an in-memory table: ordered named columns with row-aligned
// cells. Every row holds exactly len(Columns) cells, missing ones included.
type Dataset struct {
	Columns []string
	rows    [][]Cell
}

// New creates an empty dataset with the given column names.
func New(columns []string) *Dataset {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Dataset{Columns: cols}
}

// NumRows returns the number of rows.
func (ds *Dataset) NumRows() int { return len(ds.rows) }

// NumCols returns the number of columns.
func (ds *Dataset) NumCols() int { return len(ds.Columns) }

// AppendRow adds a row, padding short rows with missing cells and
// truncating long ones so the column invariant holds.
func (ds *Dataset) AppendRow(cells []Cell) {
	row := make([]Cell, len(ds.Columns))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = Null()
		}
	}
	ds.rows = append(ds.rows, row)
}

// Cell returns the cell at (row, col).
func (ds *Dataset) Cell(row, col int) Cell { return ds.rows[row][col] }

// ColumnIndex returns the index of a named column, or -1.
func (ds *Dataset) ColumnIndex(name string) int {
	for i, c := range ds.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Row is a read-only view of one dataset row, addressed by column name.
type Row struct {
	ds  *Dataset
	idx int
}

// Row returns a view of row i.
func (ds *Dataset) Row(i int) Row { return Row{ds: ds, idx: i} }

// Get looks up a cell by column name. The second return is false when the
// dataset has no such column.
func (r Row) Get(column string) (Cell, bool) {
	i := r.ds.ColumnIndex(column)
	if i < 0 {
		return Null(), false
	}
	return r.ds.rows[r.idx][i], true
}

// Index returns the 0-based row index of the view.
func (r Row) Index() int { return r.idx }

// FromRecords builds a dataset from string records, inferring each cell's
// runtime type independently. This is what makes mixed-type columns
// observable downstream.
func FromRecords(headers []string, records [][]string) *Dataset {
	ds := New(headers)
	for _, rec := range records {
		row := make([]Cell, 0, len(headers))
		for i := range headers {
			if i < len(rec) {
				row = append(row, InferCell(rec[i]))
			} else {
				row = append(row, Null())
			}
		}
		ds.AppendRow(row)
	}
	return ds
}

// InferCell converts one raw string field to a typed cell. Empty fields
// and the usual null spellings are missing; then int, float and bool
// parses are tried in that order.
func InferCell(raw string) Cell {
	s := strings.TrimSpace(raw)
	if isNullToken(s) {
		return Null()
	}
	if v, ok := parseInt(s); ok {
		return IntCell(v)
	}
	if v, ok := parseFloat(s); ok {
		return FloatCell(v)
	}
	switch s {
	case "true", "True", "TRUE":
		return BoolCell(true)
	case "false", "False", "FALSE":
		return BoolCell(false)
	}
	return StringCell(s)
}

func parseInt(s string) (int64, bool) {
	v, err := strconv.ParseInt(s, 10, 64)
	return v, err == nil
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

func isNullToken(s string) bool {
	switch s {
	case "", "null", "NULL", "None", "NaN", "nan":
		return true
	}
	return false
}
