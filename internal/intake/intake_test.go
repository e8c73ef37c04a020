package intake

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/finclusion-dev/finclusion/internal/model"
)

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"new.csv":      "csv",
		"NEW.CSV":      "csv",
		"records.yaml": "yaml",
		"records.yml":  "yaml",
		"survey.xlsx":  "xlsx",
		"notes.txt":    "",
		"no-extension": "",
	}
	for path, want := range tests {
		assert.Equal(t, want, FormatFromPath(path), path)
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"csv", "xlsx", "yaml"}, r.Formats())
	assert.NotNil(t, r.Get("CSV"))
	assert.Nil(t, r.Get("json"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&CSVParser{})
	assert.Panics(t, func() { r.Register(&CSVParser{}) })
}

func TestCSVParser(t *testing.T) {
	input := "pillar,indicator,value_numeric,observation_date\nACCESS,ACC_OWNERSHIP,49,2024-11-29\nUSAGE,USG_P2P_COUNT,,2024-06-30\n"
	recs, err := (&CSVParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "ACC_OWNERSHIP", recs[0].Indicator())
	assert.False(t, recs[1].Has(model.FieldValueNumeric))
}

func TestYAMLParser(t *testing.T) {
	input := `
- pillar: ACCESS
  indicator: ACC_OWNERSHIP
  value_numeric: 49.50
  observation_date: 2024-11-29
  gender: ~
- category: product_launch
  indicator: Telebirr launch
  observation_date: 2021-05-11
  source_name: "null"
`
	recs, err := (&YAMLParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "49.50", recs[0][model.FieldValueNumeric], "literal text preserved")
	assert.Equal(t, "2024-11-29", recs[0][model.FieldObservationDate])
	_, ok := recs[0][model.FieldGender]
	assert.False(t, ok, "null values are omitted")
	assert.Equal(t, "product_launch", recs[1][model.FieldCategory])
}

func TestYAMLParser_Empty(t *testing.T) {
	recs, err := (&YAMLParser{}).Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, recs)
}

func TestYAMLParser_Errors(t *testing.T) {
	tests := map[string]string{
		"not a list":     "pillar: ACCESS\n",
		"item not a map": "- ACCESS\n",
		"nested value":   "- pillar: [ACCESS, USAGE]\n",
		"malformed":      "- pillar: ACCESS\n  indicator: [\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := (&YAMLParser{}).Parse(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func workbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestXLSXParser(t *testing.T) {
	buf := workbook(t,
		[]any{"pillar", "indicator", "value_numeric", "observation_date"},
		[]any{"ACCESS", "ACC_OWNERSHIP", "49", "2024-11-29"},
		[]any{},
		[]any{"USAGE", "USG_DIGITAL_PAYMENT"},
	)

	recs, err := (&XLSXParser{}).Parse(buf)
	require.NoError(t, err)
	require.Len(t, recs, 2, "empty rows are skipped")
	assert.Equal(t, "49", recs[0][model.FieldValueNumeric])
	assert.Equal(t, "USG_DIGITAL_PAYMENT", recs[1].Indicator())
	assert.False(t, recs[1].Has(model.FieldObservationDate))
}

func TestXLSXParser_DuplicateHeader(t *testing.T) {
	buf := workbook(t, []any{"pillar", "pillar"}, []any{"ACCESS", "USAGE"})
	_, err := (&XLSXParser{}).Parse(buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate column")
}

func TestXLSXParser_NotAWorkbook(t *testing.T) {
	_, err := (&XLSXParser{}).Parse(strings.NewReader("pillar,indicator\n"))
	assert.Error(t, err)
}

func TestRegistry_ReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "new.yml")
	require.NoError(t, os.WriteFile(path, []byte("- pillar: ACCESS\n"), 0o644))

	r := DefaultRegistry()
	recs, err := r.ReadFile(path, "")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "ACCESS", recs[0].Pillar())

	_, err = r.ReadFile(path, "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no parser")

	_, err = r.ReadFile(filepath.Join(dir, "missing.csv"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
