package intake

import (
	"io"

	"github.com/finclusion-dev/finclusion/internal/csvtable"
	"github.com/finclusion-dev/finclusion/internal/model"
)

// CSVParser reads records laid out like the raw dataset: a header row of
// column names followed by one record per line.
type CSVParser struct{}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads a CSV file of records.
func (p *CSVParser) Parse(r io.Reader) ([]model.Record, error) {
	t, err := csvtable.Read(r)
	if err != nil {
		return nil, err
	}
	return t.Records, nil
}
