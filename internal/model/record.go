package model

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RecordType is the schema variant a row belongs to.
type RecordType string

const (
	TypeObservation RecordType = "observation"
	TypeEvent       RecordType = "event"
	TypeImpactLink  RecordType = "impact_link"
	TypeTarget      RecordType = "target"
)

// RecordTypes lists the known record types in schema order.
func RecordTypes() []RecordType {
	return []RecordType{TypeObservation, TypeEvent, TypeImpactLink, TypeTarget}
}

// Known reports whether t is one of the schema's record types.
func (t RecordType) Known() bool {
	switch t {
	case TypeObservation, TypeEvent, TypeImpactLink, TypeTarget:
		return true
	}
	return false
}

// Column names of the unified dataset.
const (
	FieldRecordID         = "record_id"
	FieldRecordType       = "record_type"
	FieldPillar           = "pillar"
	FieldIndicator        = "indicator"
	FieldValueNumeric     = "value_numeric"
	FieldObservationDate  = "observation_date"
	FieldCategory         = "category"
	FieldParentID         = "parent_id"
	FieldRelatedIndicator = "related_indicator"
	FieldSourceName       = "source_name"
	FieldLocation         = "location"
	FieldGender           = "gender"
	FieldCollectionDate   = "collection_date"
)

// DefaultColumns is the column layout of a freshly initialized raw dataset.
var DefaultColumns = []string{
	FieldRecordID,
	FieldRecordType,
	FieldPillar,
	FieldIndicator,
	FieldValueNumeric,
	FieldObservationDate,
	FieldCategory,
	FieldParentID,
	FieldRelatedIndicator,
	FieldSourceName,
	FieldLocation,
	FieldGender,
	FieldCollectionDate,
}

// naTokens are the cell values read as missing, matching what the dataset's
// producers emit for empty cells.
var naTokens = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
	"-NaN":     true,
	"-nan":     true,
	"1.#IND":   true,
	"1.#QNAN":  true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

// IsNull reports whether a raw cell value represents a missing value.
func IsNull(v string) bool {
	return naTokens[strings.TrimSpace(v)]
}

// Record is a single row of the unified dataset, keyed by column name.
// Values are kept as their original text; a missing key and a null token
// both mean "no value".
type Record map[string]string

// Value returns the field's value and whether it is present and non-null.
func (r Record) Value(field string) (string, bool) {
	v, ok := r[field]
	if !ok || IsNull(v) {
		return "", false
	}
	return v, true
}

// Has reports whether the field is present and non-null.
func (r Record) Has(field string) bool {
	_, ok := r.Value(field)
	return ok
}

// Get returns the field's value, or "" when absent or null.
func (r Record) Get(field string) string {
	v, _ := r.Value(field)
	return v
}

// ID returns the record_id, or "" when unset.
func (r Record) ID() string { return r.Get(FieldRecordID) }

// Type returns the record_type.
func (r Record) Type() RecordType { return RecordType(r.Get(FieldRecordType)) }

func (r Record) Pillar() string    { return r.Get(FieldPillar) }
func (r Record) Indicator() string { return r.Get(FieldIndicator) }
func (r Record) ParentID() string  { return r.Get(FieldParentID) }

// ValueNumeric parses value_numeric. ok is false when the value is null
// or not a number.
func (r Record) ValueNumeric() (d decimal.Decimal, ok bool) {
	v, present := r.Value(FieldValueNumeric)
	if !present {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ObservationDate parses observation_date. ok is false when the value is
// null or in no recognized calendar format.
func (r Record) ObservationDate() (time.Time, bool) {
	v, present := r.Value(FieldObservationDate)
	if !present {
		return time.Time{}, false
	}
	return ParseDate(v)
}

// Clone returns a copy of the record.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Fields returns the record's keys in sorted order.
func (r Record) Fields() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DateFormat is the canonical calendar-date layout.
const DateFormat = "2006-01-02"

var dateLayouts = []string{
	DateFormat,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"2006-01",
	"2006",
}

// ParseDate parses a calendar date in any of the layouts the dataset uses.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
