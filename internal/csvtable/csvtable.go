// Package csvtable reads and writes header-led CSV files as model.Table.
package csvtable

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/finclusion-dev/finclusion/internal/model"
)

const bom = "\ufeff"

// Read parses a CSV stream whose first row is the header. Every data row
// must have as many fields as the header. Empty input yields an empty table.
func Read(r io.Reader) (model.Table, error) {
	cr := csv.NewReader(r)

	records, err := cr.ReadAll()
	if err != nil {
		return model.Table{}, fmt.Errorf("reading CSV: %w", err)
	}

	if len(records) == 0 {
		return model.Table{}, nil
	}

	header, err := parseHeader(records[0])
	if err != nil {
		return model.Table{}, err
	}

	t := model.Table{Columns: header, Records: make([]model.Record, 0, len(records)-1)}
	for _, row := range records[1:] {
		rec := make(model.Record, len(header))
		for i, col := range header {
			rec[col] = row[i]
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) (model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Table{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return model.Table{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return t, nil
}

// Write writes the header row followed by one line per record. Cells are
// written as stored, so NA tokens survive a round trip; a record missing a
// column gets an empty cell.
func Write(w io.Writer, t model.Table) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := make([]string, len(t.Columns))
	for i, rec := range t.Records {
		for j, col := range t.Columns {
			row[j] = rec[col]
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile creates (or truncates) path and writes t to it.
func WriteFile(path string, t model.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(f, t); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func parseHeader(row []string) ([]string, error) {
	header := make([]string, len(row))
	seen := make(map[string]bool, len(row))
	for i, name := range row {
		if i == 0 {
			name = strings.TrimPrefix(name, bom)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("header column %d is blank", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate header column %q", name)
		}
		seen[name] = true
		header[i] = name
	}
	return header, nil
}
