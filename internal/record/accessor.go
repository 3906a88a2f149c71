package record

import (
	"fmt"
	"sort"

	"github.com/resilscore/resilscore/internal/catalog"
	"github.com/resilscore/resilscore/internal/types"
)

// Accessor resolves metric ids to raw values through the field keys declared
// in the catalog. Building it once per catalog means a renamed or missing
// field is reported at validation time instead of silently scoring as
// missing during evaluation.
type Accessor struct {
	fields map[string]string // metric id -> field key
}

// NewAccessor builds an accessor from the catalog's metric definitions.
func NewAccessor(cat *catalog.Catalog) *Accessor {
	fields := make(map[string]string)
	for _, p := range cat.Pillars {
		for _, m := range p.Metrics {
			fields[m.ID] = m.FieldKey()
		}
	}
	return &Accessor{fields: fields}
}

// Raw returns the raw value for a metric id, or ok=false when the metric is
// unknown or the record has no value for its field.
func (a *Accessor) Raw(rec Record, metricID string) (any, bool) {
	field, ok := a.fields[metricID]
	if !ok {
		return nil, false
	}
	return rec.Lookup(field)
}

// CheckRecord reports every metric whose field cannot be resolved against
// the given record. Used by configuration validation; evaluation itself
// scores unresolvable fields as missing rather than failing.
func (a *Accessor) CheckRecord(rec Record) []types.Issue {
	var metricIDs []string
	for id := range a.fields {
		metricIDs = append(metricIDs, id)
	}
	sort.Strings(metricIDs)

	var issues []types.Issue
	for _, id := range metricIDs {
		field := a.fields[id]
		if _, ok := rec.Lookup(field); !ok {
			issues = append(issues, types.Issue{
				ID:       id,
				Message:  fmt.Sprintf("country %q has no value for field %q", rec.ID, field),
				Severity: types.SeverityWarning,
			})
		}
	}
	return issues
}
