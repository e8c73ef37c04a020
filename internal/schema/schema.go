// Package schema holds the per-record-type rules of the unified dataset and
// the validator that checks candidate records against them.
package schema

import (
	"fmt"

	"github.com/finclusion-dev/finclusion/internal/model"
)

// Rule is the schema entry for one record type.
type Rule struct {
	Prefix       string   // record_id prefix
	Required     []string // fields that must be present and non-null
	ForbidPillar bool     // pillar is assigned indirectly and must stay null
}

// FallbackPrefix is used for record types with no rule.
const FallbackPrefix = "REC"

// Message texts reported by Validate.
const (
	missingFieldFmt = "Missing required field: %s"
	EventPillarMsg  = "Event records should not have a pillar (it's assigned via impact_links)"
)

var rules = map[model.RecordType]Rule{
	model.TypeObservation: {
		Prefix:   "OBS",
		Required: []string{model.FieldPillar, model.FieldIndicator, model.FieldValueNumeric, model.FieldObservationDate},
	},
	model.TypeEvent: {
		Prefix:       "EVT",
		Required:     []string{model.FieldCategory, model.FieldIndicator, model.FieldObservationDate},
		ForbidPillar: true,
	},
	model.TypeImpactLink: {
		Prefix:   "IMP",
		Required: []string{model.FieldParentID, model.FieldPillar, model.FieldRelatedIndicator},
	},
	model.TypeTarget: {
		Prefix:   "TGT",
		Required: []string{model.FieldPillar, model.FieldIndicator, model.FieldValueNumeric, model.FieldObservationDate},
	},
}

// RuleFor returns the rule for a record type.
func RuleFor(rt model.RecordType) (Rule, bool) {
	r, ok := rules[rt]
	return r, ok
}

// Prefix returns the record_id prefix for a record type.
func Prefix(rt model.RecordType) string {
	if r, ok := rules[rt]; ok {
		return r.Prefix
	}
	return FallbackPrefix
}

// MissingFieldMessage is the message reported for a missing required field.
func MissingFieldMessage(field string) string {
	return fmt.Sprintf(missingFieldFmt, field)
}

// Validate checks a record against the rule for recordType and returns one
// message per problem. An empty result means the record is valid. Record
// types without a rule have no required fields.
func Validate(rec model.Record, recordType model.RecordType) []string {
	var errs []string

	rule, ok := rules[recordType]
	if !ok {
		return errs
	}

	for _, field := range rule.Required {
		if !rec.Has(field) {
			errs = append(errs, MissingFieldMessage(field))
		}
	}

	if rule.ForbidPillar && rec.Has(model.FieldPillar) {
		errs = append(errs, EventPillarMsg)
	}

	return errs
}
