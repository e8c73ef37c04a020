package intake

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/finclusion-dev/finclusion/internal/model"
)

// XLSXParser reads the first sheet of a workbook. The first non-empty row
// names the columns.
type XLSXParser struct{}

// Format returns the parser name.
func (p *XLSXParser) Format() string { return "xlsx" }

// Parse reads records from a workbook.
func (p *XLSXParser) Parse(r io.Reader) ([]model.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}

	var header []string
	var recs []model.Record
	for i, row := range rows {
		if isRowEmpty(row) {
			continue
		}
		if header == nil {
			header, err = xlsxHeader(row, i+1)
			if err != nil {
				return nil, err
			}
			continue
		}
		if len(row) > len(header) {
			return nil, fmt.Errorf("row %d: %d cells, header has %d", i+1, len(row), len(header))
		}
		rec := make(model.Record, len(header))
		for j, name := range header {
			if j < len(row) {
				rec[name] = row[j]
			}
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func xlsxHeader(row []string, line int) ([]string, error) {
	seen := make(map[string]bool, len(row))
	header := make([]string, len(row))
	for j, cell := range row {
		name := strings.TrimSpace(cell)
		if name == "" {
			return nil, fmt.Errorf("row %d: blank column name in column %d", line, j+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("row %d: duplicate column %q", line, name)
		}
		seen[name] = true
		header[j] = name
	}
	return header, nil
}

func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
