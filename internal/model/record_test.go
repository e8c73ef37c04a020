package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNull(t *testing.T) {
	for _, v := range []string{"", "  ", "NaN", "nan", "NA", "N/A", "null", "None", "<NA>"} {
		assert.True(t, IsNull(v), "%q should be null", v)
	}
	for _, v := range []string{"0", "ACCESS", "none given", "N"} {
		assert.False(t, IsNull(v), "%q should not be null", v)
	}
}

func TestRecordValue(t *testing.T) {
	r := Record{FieldPillar: "ACCESS", FieldIndicator: "NaN"}

	v, ok := r.Value(FieldPillar)
	assert.True(t, ok)
	assert.Equal(t, "ACCESS", v)

	_, ok = r.Value(FieldIndicator)
	assert.False(t, ok, "NaN is a null token")

	_, ok = r.Value(FieldCategory)
	assert.False(t, ok, "absent field")
	assert.Empty(t, r.Get(FieldCategory))
}

func TestRecordValueNumeric(t *testing.T) {
	d, ok := Record{FieldValueNumeric: "46.5"}.ValueNumeric()
	require.True(t, ok)
	assert.Equal(t, "46.5", d.String())

	_, ok = Record{FieldValueNumeric: "about 40"}.ValueNumeric()
	assert.False(t, ok)

	_, ok = Record{}.ValueNumeric()
	assert.False(t, ok)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2021-12-31", time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"2021/12/31", time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"12/31/2021", time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"2021-12-31 08:30:00", time.Date(2021, 12, 31, 8, 30, 0, 0, time.UTC)},
		{"2024-05", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"2017", time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.input)
		require.True(t, ok, "input %q", tt.input)
		assert.True(t, tt.want.Equal(got), "input %q: got %s", tt.input, got)
	}

	for _, bad := range []string{"", "unknown", "2021-13-45", "Q3 2022"} {
		_, ok := ParseDate(bad)
		assert.False(t, ok, "input %q", bad)
	}
}

func TestRecordTypeKnown(t *testing.T) {
	for _, rt := range RecordTypes() {
		assert.True(t, rt.Known())
	}
	assert.False(t, RecordType("forecast").Known())
}

func TestCloneIsIndependent(t *testing.T) {
	r := Record{FieldPillar: "ACCESS"}
	c := r.Clone()
	c[FieldPillar] = "USAGE"
	assert.Equal(t, "ACCESS", r[FieldPillar])
	assert.Equal(t, []string{FieldPillar}, c.Fields())
}
