package excel

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestParse_HeadersAndRows(t *testing.T) {
	t.Parallel()

	buf := workbookBytes(t, [][]interface{}{
		{"name", "age", "active"},
		{"alice", 30, true},
		{"bob", 25, false},
	})

	sheet, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if len(sheet.Headers) != 3 || sheet.Headers[0] != "name" {
		t.Fatalf("unexpected headers: %v", sheet.Headers)
	}
	if len(sheet.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(sheet.Rows))
	}
	if sheet.Rows[0][0] != "alice" {
		t.Fatalf("expected string cell, got %#v", sheet.Rows[0][0])
	}
	if sheet.Rows[0][1] != float64(30) {
		t.Fatalf("expected numeric cell coerced to float64, got %#v", sheet.Rows[0][1])
	}
	if sheet.Rows[0][2] != true {
		t.Fatalf("expected bool cell coerced to true, got %#v", sheet.Rows[0][2])
	}
	if sheet.Rows[1][2] != false {
		t.Fatalf("expected bool cell coerced to false, got %#v", sheet.Rows[1][2])
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	t.Parallel()

	buf := workbookBytes(t, [][]interface{}{{"a", "b"}})

	sheet, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(sheet.Rows) != 0 {
		t.Fatalf("expected zero data rows, got %d", len(sheet.Rows))
	}
}

func TestParse_EmptyWorkbook(t *testing.T) {
	t.Parallel()

	buf := workbookBytes(t, nil)

	_, err := Parse(buf)
	if !errors.Is(err, ErrEmptyWorkbook) {
		t.Fatalf("expected ErrEmptyWorkbook, got %v", err)
	}
}

func TestParse_Garbage(t *testing.T) {
	t.Parallel()

	_, err := Parse(bytes.NewBufferString("not a workbook"))
	if err == nil {
		t.Fatal("expected error for non-workbook input")
	}
}
