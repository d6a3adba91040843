package dataset

import (
	"math"
	"testing"
)

func TestInferCell(t *testing.T) {
	tests := []struct {
		raw  string
		want Cell
	}{
		{"", Null()},
		{"  ", Null()},
		{"null", Null()},
		{"NULL", Null()},
		{"None", Null()},
		{"NaN", Null()},
		{"nan", Null()},
		{"42", IntCell(42)},
		{"-7", IntCell(-7)},
		{" 42 ", IntCell(42)},
		{"3.14", FloatCell(3.14)},
		{"1e3", FloatCell(1000)},
		{"true", BoolCell(true)},
		{"False", BoolCell(false)},
		{"TRUE", BoolCell(true)},
		{"hello", StringCell("hello")},
		{"42abc", StringCell("42abc")},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := InferCell(tt.raw); got != tt.want {
				t.Errorf("InferCell(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFromRecordsPadsShortRecords(t *testing.T) {
	ds := FromRecords([]string{"a", "b", "c"}, [][]string{
		{"1", "2", "3"},
		{"4"},
	})

	if ds.NumRows() != 2 || ds.NumCols() != 3 {
		t.Fatalf("shape = %dx%d, want 2x3", ds.NumRows(), ds.NumCols())
	}
	if !ds.Cell(1, 1).IsNull() || !ds.Cell(1, 2).IsNull() {
		t.Errorf("short record not padded with missing cells: %+v %+v", ds.Cell(1, 1), ds.Cell(1, 2))
	}
}

func TestAppendRowTruncatesLongRows(t *testing.T) {
	ds := New([]string{"a"})
	ds.AppendRow([]Cell{IntCell(1), IntCell(2)})
	if ds.NumCols() != 1 || ds.Cell(0, 0) != IntCell(1) {
		t.Errorf("long row not truncated to the column count")
	}
}

func TestRowGet(t *testing.T) {
	ds := New([]string{"Age", "name"})
	ds.AppendRow([]Cell{IntCell(30), StringCell("ada")})

	row := ds.Row(0)
	if c, ok := row.Get("Age"); !ok || c != IntCell(30) {
		t.Errorf("Get(Age) = (%+v, %v)", c, ok)
	}
	if _, ok := row.Get("missing"); ok {
		t.Error("Get on an unknown column reported ok")
	}
	if row.Index() != 0 {
		t.Errorf("Index() = %d, want 0", row.Index())
	}
}

func TestCellDisplay(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want string
	}{
		{"int", IntCell(42), "42"},
		{"float", FloatCell(3.5), "3.5"},
		{"bool", BoolCell(true), "true"},
		{"string", StringCell("x"), "x"},
		{"missing", Null(), "NaN"},
		{"nan float", FloatCell(math.NaN()), "NaN"},
		{"positive infinity", FloatCell(math.Inf(1)), "Infinity"},
		{"negative infinity", FloatCell(math.Inf(-1)), "-Infinity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cell.Display(); got != tt.want {
				t.Errorf("Display() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCellNumeric(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want float64
	}{
		{"int", IntCell(7), 7},
		{"float", FloatCell(2.5), 2.5},
		{"bool true", BoolCell(true), 1},
		{"bool false", BoolCell(false), 0},
		{"numeric string", StringCell("99.5"), 99.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cell.Numeric(); got != tt.want {
				t.Errorf("Numeric() = %v, want %v", got, tt.want)
			}
		})
	}

	for _, c := range []Cell{StringCell("oops"), Null()} {
		if !math.IsNaN(c.Numeric()) {
			t.Errorf("Numeric(%+v) = %v, want NaN", c, c.Numeric())
		}
	}
}

func TestCellKeyDistinguishesKinds(t *testing.T) {
	if IntCell(1).Key() == StringCell("1").Key() {
		t.Error("int 1 and string \"1\" share a key")
	}
	if IntCell(1).Key() != IntCell(1).Key() {
		t.Error("equal cells have different keys")
	}
}

func TestCellValueNilForMissing(t *testing.T) {
	if v := Null().Value(); v != nil {
		t.Errorf("Value() = %#v, want nil", v)
	}
	if v := IntCell(5).Value(); v != int64(5) {
		t.Errorf("Value() = %#v, want int64(5)", v)
	}
}
