package changelog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp:  testTime,
		Action:     ActionAdd,
		RecordType: "observation",
		Count:      2,
		RecordIDs:  []string{"OBS_0031", "OBS_0032"},
		Details:    "from new_observations.csv",
	}
}

func TestAppend_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "changes.csv")
	require.NoError(t, Append(path, []Entry{testEntry()}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), Header+"\n"))

	entries, err := Read(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, testEntry(), entries[0])
}

func TestAppend_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "changes.csv")
	require.NoError(t, Append(path, []Entry{testEntry()}))

	save := Entry{
		Timestamp: testTime.Add(time.Minute),
		Action:    ActionSave,
		Count:     32,
		Details:   "data/processed/ethiopia_fi_enriched.csv",
	}
	require.NoError(t, Append(path, []Entry{save}))

	entries, err := Read(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ActionAdd, entries[0].Action)
	assert.Equal(t, ActionSave, entries[1].Action)
	assert.Nil(t, entries[1].RecordIDs)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Header), "header written once")
}

func TestRead_Missing(t *testing.T) {
	entries, err := Read(filepath.Join(t.TempDir(), "none.csv"))
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestUnmarshalEntry_Errors(t *testing.T) {
	_, err := UnmarshalEntry([]string{"a", "b"})
	assert.Error(t, err)

	_, err = UnmarshalEntry([]string{"yesterday", ActionAdd, "event", "1", "", ""})
	assert.Error(t, err)

	_, err = UnmarshalEntry([]string{testTime.Format(time.RFC3339), ActionAdd, "event", "two", "", ""})
	assert.Error(t, err)
}

func TestMarshalEntry_TimestampUTC(t *testing.T) {
	e := testEntry()
	e.Timestamp = time.Date(2025, 1, 15, 13, 30, 0, 0, time.FixedZone("EAT", 3*60*60))
	row := MarshalEntry(e)
	assert.Equal(t, "2025-01-15T10:30:00Z", row[colTimestamp])
	assert.Equal(t, "OBS_0031;OBS_0032", row[colRecordIDs])
}
