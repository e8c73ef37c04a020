package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRecordID(t *testing.T) {
	tests := []struct {
		prefix string
		seq    int
		want   string
	}{
		{"OBS", 1, "OBS_0001"},
		{"EVT", 42, "EVT_0042"},
		{"IMP", 9999, "IMP_9999"},
		{"TGT", 12345, "TGT_12345"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRecordID(tt.prefix, tt.seq))
	}
}

func TestParseRecordID(t *testing.T) {
	tests := []struct {
		input      string
		wantPrefix string
		wantSeq    int
	}{
		{"OBS_0001", "OBS", 1},
		{"EVT_0120", "EVT", 120},
		{"REC_7", "REC", 7},
	}
	for _, tt := range tests {
		prefix, seq, err := ParseRecordID(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.wantPrefix, prefix)
		assert.Equal(t, tt.wantSeq, seq)
	}
}

func TestParseRecordID_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"OBS",
		"OBS_",
		"OBS_xyz",
		"OBS_-1",
		"_0001",
		"OBS_0001_a",
	}
	for _, input := range badInputs {
		_, _, err := ParseRecordID(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}

func TestNextSeq(t *testing.T) {
	assert.Equal(t, 1, NextSeq(nil, "OBS"))

	ids := []string{"OBS_0001", "OBS_0002", "OBS_0003", "OBS_0004", "OBS_0005", "OBS_xyz"}
	assert.Equal(t, 6, NextSeq(ids, "OBS"), "malformed IDs are ignored")

	mixed := []string{"OBS_0009", "EVT_0003", "OBSX_0100"}
	assert.Equal(t, 4, NextSeq(mixed, "EVT"))
	assert.Equal(t, 10, NextSeq(mixed, "OBS"), "prefix must match exactly")
}
