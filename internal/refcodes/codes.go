package refcodes

import (
	"fmt"
	"io"

	"github.com/finclusion-dev/finclusion/internal/csvtable"
	"github.com/finclusion-dev/finclusion/internal/model"
)

// Column names of reference_codes.csv.
const (
	colField       = "field"
	colCode        = "code"
	colDescription = "description"
	colLabel       = "label"
	colAppliesTo   = "applies_to"
)

// Header is the column layout written by WriteCodes.
var Header = []string{colField, colCode, colDescription, colAppliesTo}

// Code maps one categorical value of a dataset field to a readable label.
type Code struct {
	Field       string
	Code        string
	Description string
	AppliesTo   string // record types the code is valid for, free text
}

// FromTable interprets a reference table. Rows without a field or code are
// skipped, and a table with neither column yields no codes.
func FromTable(t model.Table) []Code {
	if !t.HasColumn(colField) || !t.HasColumn(colCode) {
		return nil
	}
	labelCol := colDescription
	if !t.HasColumn(colDescription) && t.HasColumn(colLabel) {
		labelCol = colLabel
	}

	var codes []Code
	for _, rec := range t.Records {
		field, code := rec.Get(colField), rec.Get(colCode)
		if field == "" || code == "" {
			continue
		}
		codes = append(codes, Code{
			Field:       field,
			Code:        code,
			Description: rec.Get(labelCol),
			AppliesTo:   rec.Get(colAppliesTo),
		})
	}
	return codes
}

// ReadCodes reads a reference codes CSV.
func ReadCodes(r io.Reader) ([]Code, error) {
	t, err := csvtable.Read(r)
	if err != nil {
		return nil, fmt.Errorf("reading reference codes: %w", err)
	}
	return FromTable(t), nil
}

// WriteCodes writes codes as CSV, header included.
func WriteCodes(w io.Writer, codes []Code) error {
	t := model.Table{Columns: Header}
	for _, c := range codes {
		t.Records = append(t.Records, model.Record{
			colField:       c.Field,
			colCode:        c.Code,
			colDescription: c.Description,
			colAppliesTo:   c.AppliesTo,
		})
	}
	return csvtable.Write(w, t)
}
