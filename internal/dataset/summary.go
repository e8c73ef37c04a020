package dataset

import (
	"strings"
	"time"

	"github.com/finclusion-dev/finclusion/internal/model"
)

// NotAvailable marks a summary cell that could not be computed.
const NotAvailable = "N/A"

const maxListedPillars = 3

// TypeSummary is one row of SummarizeByRecordType.
type TypeSummary struct {
	RecordType model.RecordType
	Count      int
	Pillars    string // up to three distinct pillars, "..." when more exist
	Indicators int    // distinct non-null indicators
	DateRange  string // "YYYY-MM-DD to YYYY-MM-DD" or NotAvailable
}

type typeGroup struct {
	count      int
	pillars    []string
	seenPillar map[string]bool
	indicators map[string]bool
	minDate    time.Time
	maxDate    time.Time
	hasDate    bool
}

// SummarizeByRecordType returns one summary per distinct record_type, in the
// order each type first appears. Unparseable observation dates still count
// toward Count but are left out of DateRange.
func (s *Store) SummarizeByRecordType() ([]TypeSummary, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	return Summarize(*s.data), nil
}

// Summarize computes per-record-type summaries over t.
func Summarize(t model.Table) []TypeSummary {
	hasPillar := t.HasColumn(model.FieldPillar)
	hasIndicator := t.HasColumn(model.FieldIndicator)
	hasDate := t.HasColumn(model.FieldObservationDate)

	groups := make(map[model.RecordType]*typeGroup)
	var order []model.RecordType
	for _, rec := range t.Records {
		rt := rec.Type()
		g, ok := groups[rt]
		if !ok {
			g = &typeGroup{seenPillar: make(map[string]bool), indicators: make(map[string]bool)}
			groups[rt] = g
			order = append(order, rt)
		}
		g.count++

		if p := rec.Pillar(); p != "" && !g.seenPillar[p] {
			g.seenPillar[p] = true
			g.pillars = append(g.pillars, p)
		}
		if ind := rec.Indicator(); ind != "" {
			g.indicators[ind] = true
		}
		if d, ok := rec.ObservationDate(); ok {
			if !g.hasDate || d.Before(g.minDate) {
				g.minDate = d
			}
			if !g.hasDate || d.After(g.maxDate) {
				g.maxDate = d
			}
			g.hasDate = true
		}
	}

	summaries := make([]TypeSummary, 0, len(order))
	for _, rt := range order {
		g := groups[rt]
		ts := TypeSummary{
			RecordType: rt,
			Count:      g.count,
			Pillars:    NotAvailable,
			DateRange:  NotAvailable,
		}
		if hasPillar {
			ts.Pillars = joinPillars(g.pillars)
		}
		if hasIndicator {
			ts.Indicators = len(g.indicators)
		}
		if hasDate && g.hasDate {
			ts.DateRange = g.minDate.Format(model.DateFormat) + " to " + g.maxDate.Format(model.DateFormat)
		}
		summaries = append(summaries, ts)
	}
	return summaries
}

func joinPillars(pillars []string) string {
	if len(pillars) <= maxListedPillars {
		return strings.Join(pillars, ", ")
	}
	return strings.Join(pillars[:maxListedPillars], ", ") + "..."
}
