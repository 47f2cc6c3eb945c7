package excel

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrEmptyWorkbook = errors.New("spreadsheet has no rows")

// Sheet is the parsed first sheet of a workbook: a header row plus the
// remaining rows as loosely typed cells.
type Sheet struct {
	Headers []string
	Rows    [][]interface{}
}

// Parse reads a workbook and extracts its first sheet. A sheet with no
// rows at all (not even a header) yields ErrEmptyWorkbook; a sheet with
// only a header parses to zero data rows.
func Parse(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyWorkbook
	}

	data := make([][]interface{}, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]interface{}, len(row))
		for i, c := range row {
			cells[i] = coerce(c)
		}
		data = append(data, cells)
	}

	return &Sheet{Headers: rows[0], Rows: data}, nil
}

// coerce maps cell text onto the scalar it spells: numbers to float64,
// TRUE/FALSE to bool, everything else stays a string.
func coerce(cell string) interface{} {
	if cell == "" {
		return cell
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	switch strings.ToUpper(cell) {
	case "TRUE":
		return true
	case "FALSE":
		return false
	}
	return cell
}
