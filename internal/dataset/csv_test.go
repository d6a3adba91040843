package dataset

import (
	"testing"
)

func TestReadCSV(t *testing.T) {
	data := []byte("Age,Salary,name\n30,50000,ada\n,bad,grace\n40,60000.5,\n")

	ds, err := ReadCSV(data)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}

	wantCols := []string{"Age", "Salary", "name"}
	if len(ds.Columns) != 3 {
		t.Fatalf("columns = %v, want %v", ds.Columns, wantCols)
	}
	for i, c := range wantCols {
		if ds.Columns[i] != c {
			t.Errorf("column %d = %q, want %q", i, ds.Columns[i], c)
		}
	}
	if ds.NumRows() != 3 {
		t.Fatalf("rows = %d, want 3", ds.NumRows())
	}

	if got := ds.Cell(0, 0); got != IntCell(30) {
		t.Errorf("cell (0,0) = %+v, want int 30", got)
	}
	if got := ds.Cell(1, 0); !got.IsNull() {
		t.Errorf("cell (1,0) = %+v, want missing", got)
	}
	if got := ds.Cell(1, 1); got != StringCell("bad") {
		t.Errorf("cell (1,1) = %+v, want string \"bad\"", got)
	}
	if got := ds.Cell(2, 1); got != FloatCell(60000.5) {
		t.Errorf("cell (2,1) = %+v, want float 60000.5", got)
	}
	if got := ds.Cell(2, 2); !got.IsNull() {
		t.Errorf("cell (2,2) = %+v, want missing", got)
	}
}

func TestReadCSVSemicolonFallback(t *testing.T) {
	data := []byte("Age;name\n30;ada\n40;grace\n")

	ds, err := ReadCSV(data)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(ds.Columns) != 2 || ds.Columns[0] != "Age" || ds.Columns[1] != "name" {
		t.Fatalf("columns = %v, want [Age name]", ds.Columns)
	}
	if got := ds.Cell(1, 0); got != IntCell(40) {
		t.Errorf("cell (1,0) = %+v, want int 40", got)
	}
}

func TestReadCSVRaggedRows(t *testing.T) {
	data := []byte("a,b,c\n1,2\n1,2,3,4\n")

	ds, err := ReadCSV(data)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if ds.NumRows() != 2 {
		t.Fatalf("rows = %d, want 2", ds.NumRows())
	}
	// Short rows pad with missing cells, long rows truncate.
	if !ds.Cell(0, 2).IsNull() {
		t.Errorf("short row not padded: %+v", ds.Cell(0, 2))
	}
	if ds.NumCols() != 3 {
		t.Errorf("cols = %d, want 3", ds.NumCols())
	}
}

func TestReadCSVEmptyInput(t *testing.T) {
	if _, err := ReadCSV(nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestReadCSVTrimsHeaderWhitespace(t *testing.T) {
	ds, err := ReadCSV([]byte(" Age , name\n1,x\n"))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if ds.Columns[0] != "Age" || ds.Columns[1] != "name" {
		t.Errorf("columns = %v, want trimmed [Age name]", ds.Columns)
	}
}
