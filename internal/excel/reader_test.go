package excel

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes an in-memory XLSX with the given rows on the named sheet.
func buildWorkbook(t *testing.T, sheet string, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("NewSheet: %v", err)
		}
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf.Bytes()
}

func TestReadRowsFirstSheet(t *testing.T) {
	data := buildWorkbook(t, "Sheet1", [][]interface{}{
		{"name", "age"},
		{"Alice", "30"},
		{"Bob", "25"},
	})

	rows, err := ReadRows(bytes.NewReader(data), "")
	if err != nil {
		t.Fatalf("ReadRows: unexpected error: %v", err)
	}

	want := [][]string{{"name", "age"}, {"Alice", "30"}, {"Bob", "25"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %q, want %q", rows, want)
	}
}

func TestReadRowsNamedSheet(t *testing.T) {
	data := buildWorkbook(t, "Data", [][]interface{}{
		{"x", "y"},
	})

	rows, err := ReadRows(bytes.NewReader(data), "Data")
	if err != nil {
		t.Fatalf("ReadRows: unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "x" {
		t.Errorf("rows = %q, want single header row", rows)
	}
}

func TestReadRowsMissingSheet(t *testing.T) {
	data := buildWorkbook(t, "Sheet1", [][]interface{}{{"a"}})

	if _, err := ReadRows(bytes.NewReader(data), "NoSuchSheet"); err == nil {
		t.Fatal("expected error for missing sheet, got none")
	}
}

func TestReadRowsNotAWorkbook(t *testing.T) {
	if _, err := ReadRows(bytes.NewReader([]byte("not an xlsx")), ""); err == nil {
		t.Fatal("expected error for invalid workbook, got none")
	}
}
