package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finclusion-dev/finclusion/internal/csvtable"
	"github.com/finclusion-dev/finclusion/internal/model"
)

func mustTable(t *testing.T, content string) model.Table {
	t.Helper()
	tbl, err := csvtable.Read(strings.NewReader(content))
	require.NoError(t, err)
	return tbl
}

func TestSummarizeByRecordType(t *testing.T) {
	store, _ := newTestStore(t, rawSample, refSample)

	summaries, err := store.SummarizeByRecordType()
	require.NoError(t, err)
	require.Len(t, summaries, 4)

	assert.Equal(t, TypeSummary{
		RecordType: model.TypeObservation,
		Count:      3,
		Pillars:    "ACCESS, USAGE",
		Indicators: 2,
		DateRange:  "2014-12-31 to 2021-12-31",
	}, summaries[0])

	assert.Equal(t, model.TypeEvent, summaries[1].RecordType)
	assert.Equal(t, 2, summaries[1].Count)
	assert.Empty(t, summaries[1].Pillars)
	assert.Equal(t, 2, summaries[1].Indicators)

	assert.Equal(t, model.TypeImpactLink, summaries[2].RecordType)
	assert.Equal(t, NotAvailable, summaries[2].DateRange, "impact links carry no dates")
	assert.Zero(t, summaries[2].Indicators)

	assert.Equal(t, model.TypeTarget, summaries[3].RecordType)
	assert.Equal(t, "2025-12-31 to 2025-12-31", summaries[3].DateRange)
}

func TestSummarize_FirstEncounteredOrder(t *testing.T) {
	tbl := mustTable(t, "record_type,pillar\ntarget,ACCESS\nevent,\nobservation,USAGE\nevent,\n")
	summaries := Summarize(tbl)
	require.Len(t, summaries, 3)
	assert.Equal(t, model.TypeTarget, summaries[0].RecordType)
	assert.Equal(t, model.TypeEvent, summaries[1].RecordType)
	assert.Equal(t, 2, summaries[1].Count)
	assert.Equal(t, model.TypeObservation, summaries[2].RecordType)
}

func TestSummarize_PillarTruncation(t *testing.T) {
	tbl := mustTable(t, "record_type,pillar\n"+
		"observation,ACCESS\nobservation,USAGE\nobservation,ACCESS\nobservation,QUALITY\nobservation,GENDER\n")
	summaries := Summarize(tbl)
	require.Len(t, summaries, 1)
	assert.Equal(t, "ACCESS, USAGE, QUALITY...", summaries[0].Pillars)

	exact := mustTable(t, "record_type,pillar\nobservation,ACCESS\nobservation,USAGE\nobservation,QUALITY\n")
	assert.Equal(t, "ACCESS, USAGE, QUALITY", Summarize(exact)[0].Pillars)
}

func TestSummarize_UnparseableDatesStillCounted(t *testing.T) {
	tbl := mustTable(t, "record_type,indicator,observation_date\n"+
		"observation,A,2020-06-30\n"+
		"observation,A,not a date\n"+
		"observation,B,\n"+
		"observation,C,2019-01-15\n")
	summaries := Summarize(tbl)
	require.Len(t, summaries, 1)
	assert.Equal(t, 4, summaries[0].Count)
	assert.Equal(t, 3, summaries[0].Indicators)
	assert.Equal(t, "2019-01-15 to 2020-06-30", summaries[0].DateRange)
}

func TestSummarize_NoParseableDates(t *testing.T) {
	tbl := mustTable(t, "record_type,observation_date\nevent,soon\nevent,TBD\n")
	assert.Equal(t, NotAvailable, Summarize(tbl)[0].DateRange)
}

func TestSummarize_MissingOptionalColumns(t *testing.T) {
	tbl := mustTable(t, "record_id,record_type\nOBS_0001,observation\n")
	summaries := Summarize(tbl)
	require.Len(t, summaries, 1)
	assert.Equal(t, NotAvailable, summaries[0].Pillars)
	assert.Zero(t, summaries[0].Indicators)
	assert.Equal(t, NotAvailable, summaries[0].DateRange)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Empty(t, Summarize(model.Table{}))
}
