package dataset

import (
	"github.com/finclusion-dev/finclusion/internal/model"
)

// Join suffixes for columns present on both sides of EventsWithImpacts.
const (
	SuffixImpact = "_impact"
	SuffixEvent  = "_event"
)

// eventJoinColumns are the event-side columns pulled into the join.
var eventJoinColumns = []string{
	model.FieldRecordID,
	model.FieldIndicator,
	model.FieldObservationDate,
	model.FieldCategory,
}

// FilterByPillar returns copies of the observation records whose pillar
// equals pillar, in dataset order.
func (s *Store) FilterByPillar(pillar string) ([]model.Record, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	return FilterByPillar(*s.data, pillar), nil
}

// FilterByPillar selects observations with the given pillar from t. A null
// pillar never matches, not even an empty pillar argument.
func FilterByPillar(t model.Table, pillar string) []model.Record {
	matches := t.Where(func(r model.Record) bool {
		if r.Type() != model.TypeObservation {
			return false
		}
		v, ok := r.Value(model.FieldPillar)
		return ok && v == pillar
	})
	out := make([]model.Record, len(matches))
	for i, r := range matches {
		out[i] = r.Clone()
	}
	return out
}

// EventsWithImpacts joins impact_link records to their parent events.
func (s *Store) EventsWithImpacts() (model.Table, error) {
	if err := s.ensureLoaded(); err != nil {
		return model.Table{}, err
	}
	return JoinEventsWithImpacts(*s.data), nil
}

// JoinEventsWithImpacts inner-joins impact_link.parent_id to event.record_id,
// taking record_id, indicator, observation_date and category from the event.
// Columns that exist on both sides get SuffixImpact and SuffixEvent. Rows
// follow impact_link order; links with no matching event are dropped.
func JoinEventsWithImpacts(t model.Table) model.Table {
	impacts := t.Where(func(r model.Record) bool { return r.Type() == model.TypeImpactLink })
	events := t.Where(func(r model.Record) bool { return r.Type() == model.TypeEvent })
	if len(impacts) == 0 || len(events) == 0 {
		return model.Table{}
	}

	overlap := make(map[string]bool)
	for _, c := range eventJoinColumns {
		if t.HasColumn(c) {
			overlap[c] = true
		}
	}
	leftName := func(c string) string {
		if overlap[c] {
			return c + SuffixImpact
		}
		return c
	}
	rightName := func(c string) string {
		if overlap[c] {
			return c + SuffixEvent
		}
		return c
	}

	out := model.Table{}
	for _, c := range t.Columns {
		out.Columns = append(out.Columns, leftName(c))
	}
	for _, c := range eventJoinColumns {
		out.Columns = append(out.Columns, rightName(c))
	}

	byID := make(map[string][]model.Record)
	for _, ev := range events {
		if eid := ev.ID(); eid != "" {
			byID[eid] = append(byID[eid], ev)
		}
	}

	for _, link := range impacts {
		parent := link.ParentID()
		if parent == "" {
			continue
		}
		for _, ev := range byID[parent] {
			row := make(model.Record, len(out.Columns))
			for _, c := range t.Columns {
				if v, ok := link[c]; ok {
					row[leftName(c)] = v
				}
			}
			for _, c := range eventJoinColumns {
				if v, ok := ev[c]; ok {
					row[rightName(c)] = v
				}
			}
			out.Records = append(out.Records, row)
		}
	}
	return out
}
