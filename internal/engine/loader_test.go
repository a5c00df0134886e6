package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	csvContent := []byte(`Iteration,EvaluatedCases,StepLength,TentativeBestCaseID,TentativeBestCaseOFValue
0,1,64.0,c0,3.1
1,9,32.0,c4,2.0
2,17,16.0,c11,1.5
`)

	tmpFile, err := os.CreateTemp("", "log_optimization_*.csv")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(csvContent); err != nil {
		t.Fatal(err)
	}
	if err := tmpFile.Close(); err != nil {
		t.Fatal(err)
	}

	table := Parse(tmpFile.Name())

	headers := table.Headers()
	if len(headers) != 5 {
		t.Fatalf("Expected 5 headers, got %d", len(headers))
	}
	if headers[0] != "Iteration" || headers[4] != "TentativeBestCaseOFValue" {
		t.Errorf("Headers out of order: %v", headers)
	}

	// Every column has one entry per data row
	for _, h := range headers {
		if n := len(table.Column(h)); n != 3 {
			t.Errorf("Column %s: expected 3 values, got %d", h, n)
		}
	}

	ids := table.Column("TentativeBestCaseID")
	if ids[0] != "c0" || ids[2] != "c11" {
		t.Errorf("TentativeBestCaseID out of order: %v", ids)
	}
	if table.Rows() != 3 {
		t.Errorf("Expected 3 rows, got %d", table.Rows())
	}
}

func TestParseMissingFile(t *testing.T) {
	table, err := ParseFile(filepath.Join(t.TempDir(), "log_missing.csv"))
	if err == nil {
		t.Fatal("Expected read error")
	}
	if table == nil {
		t.Fatal("Expected empty table, got nil")
	}
	if len(table.Headers()) != 0 {
		t.Errorf("Expected no headers, got %v", table.Headers())
	}
	if got := table.Column("anything"); len(got) != 0 {
		t.Errorf("Expected empty column, got %v", got)
	}

	if Parse(filepath.Join(t.TempDir(), "nope.csv")).Rows() != 0 {
		t.Error("Parse of missing file should be empty")
	}
}

func TestParseBytesMalformedRows(t *testing.T) {
	table := ParseBytes([]byte("a,b,c\n1,2,3\n\nlonely\n4,5\n6,7,8,9\n10,11,12\n"))

	if table.Rows() != 2 {
		t.Fatalf("Expected 2 accepted rows, got %d", table.Rows())
	}
	// empty line is not counted, the other three are
	if table.Dropped() != 3 {
		t.Errorf("Expected 3 dropped rows, got %d", table.Dropped())
	}
	for _, h := range []string{"a", "b", "c"} {
		if n := len(table.Column(h)); n != 2 {
			t.Errorf("Column %s: expected 2 values, got %d", h, n)
		}
	}
	if got := table.Column("c"); got[0] != "3" || got[1] != "12" {
		t.Errorf("Column c: unexpected values %v", got)
	}
}

func TestParseBytesLineEndings(t *testing.T) {
	table := ParseBytes([]byte("\r\n\r\nx,y\r\n1,2\r\n3,4"))

	headers := table.Headers()
	if len(headers) != 2 || headers[1] != "y" {
		t.Fatalf("Unexpected headers %q", headers)
	}
	if got := table.Column("y"); len(got) != 2 || got[0] != "2" || got[1] != "4" {
		t.Errorf("Column y: unexpected values %q", got)
	}
}

func TestParseBytesNoQuoting(t *testing.T) {
	// Commas inside quotes still split; the row no longer fits the header.
	table := ParseBytes([]byte("name,value\n\"a,b\",1\nc,2\n"))

	if got := table.Column("name"); len(got) != 1 || got[0] != "c" {
		t.Errorf("Expected only the unquoted row, got %v", got)
	}
}

func TestColumnReturnsCopy(t *testing.T) {
	table := ParseBytes([]byte("a,b\n1,2\n"))
	col := table.Column("a")
	col[0] = "mutated"

	if table.Column("a")[0] != "1" {
		t.Error("Column must not expose internal storage")
	}
}

func TestConversionHelpers(t *testing.T) {
	if f := toFloat(" 123.45 "); f != 123.45 {
		t.Errorf("toFloat failed: %v", f)
	}
	if f := toFloat("-2.5e-3"); f != -0.0025 {
		t.Errorf("toFloat failed: %v", f)
	}
	if f := toFloat("nan-ish"); f != 0 {
		t.Errorf("toFloat should default to 0, got %v", f)
	}

	if i := toInt("99"); i != 99 {
		t.Errorf("toInt failed: %v", i)
	}
	if i := toInt("3.0"); i != 0 {
		t.Errorf("toInt should reject decimals, got %v", i)
	}
	if i := toInt(""); i != 0 {
		t.Errorf("toInt of empty should be 0, got %v", i)
	}
}
