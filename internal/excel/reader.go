// Package excel reads worksheet data so spreadsheets can flow through the
// same table→document mapping as delimited text.
package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReadRows extracts one worksheet from an XLSX stream as rows of cell
// strings. When sheet is empty, the first sheet in the workbook is used.
// Cells arrive in their display form; trailing empty cells are not padded,
// so rows may be ragged exactly like a ragged CSV.
func ReadRows(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}
