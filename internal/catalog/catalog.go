// Package catalog holds the metric and pillar configuration that drives
// scoring. Definitions are loaded once and treated as read-only for the
// lifetime of an evaluation batch.
package catalog

import "math"

// ScoringType identifies how a metric's raw value is normalized.
type ScoringType string

// Scoring type constants.
const (
	TypeBoolean    ScoringType = "boolean"
	TypePercentage ScoringType = "percentage"
	TypeNumber     ScoringType = "number"
	TypeEnum       ScoringType = "enum"
	TypeDerived    ScoringType = "derived"
)

// WeightTolerance is the allowed deviation of a weight sum from 1.0.
const WeightTolerance = 0.001

// MetricDefinition describes one indicator. Only semantic scoring fields
// live here; display metadata is kept in a separate Presentation mapping.
type MetricDefinition struct {
	ID string `yaml:"id"`

	Type ScoringType `yaml:"type"`

	// Thresholds for number-type metrics. Complete < Partial means a lower
	// raw value is better (inverted direction).
	Complete float64 `yaml:"complete"`
	Partial  float64 `yaml:"partial"`

	// EnumValues is the ordered label list for enum-type metrics,
	// best first.
	EnumValues []string `yaml:"enumValues,omitempty"`

	// Weight is this metric's fraction of its pillar score.
	Weight float64 `yaml:"weight"`

	// Field is the country record key holding the raw value. Empty means
	// the metric id itself is the key.
	Field string `yaml:"field,omitempty"`
}

// FieldKey returns the country record key for this metric's raw value.
func (m MetricDefinition) FieldKey() string {
	if m.Field != "" {
		return m.Field
	}
	return m.ID
}

// Inverted reports whether a lower raw value is better for a number-type
// metric.
func (m MetricDefinition) Inverted() bool {
	return m.Complete < m.Partial
}

// PillarDefinition groups metrics contributing a weighted share of the
// overall maturity score.
type PillarDefinition struct {
	ID      string             `yaml:"id"`
	Weight  float64            `yaml:"weight"`
	Metrics []MetricDefinition `yaml:"metrics"`
}

// MetricWeightSum returns the sum of the pillar's metric weights.
func (p PillarDefinition) MetricWeightSum() float64 {
	var sum float64
	for _, m := range p.Metrics {
		sum += m.Weight
	}
	return sum
}

// WeightsValid reports whether the pillar's metric weights sum to 1.0
// within tolerance.
func (p PillarDefinition) WeightsValid() bool {
	return math.Abs(p.MetricWeightSum()-1.0) < WeightTolerance
}

// Catalog is the full metric configuration: ordered pillars plus optional
// presentation metadata keyed by metric or pillar id.
type Catalog struct {
	Pillars      []PillarDefinition      `yaml:"pillars"`
	Presentation map[string]Presentation `yaml:"presentation,omitempty"`
}

// Presentation is display-only metadata. It never influences scoring.
type Presentation struct {
	Label string `yaml:"label,omitempty"`
	Color string `yaml:"color,omitempty"`
	Icon  string `yaml:"icon,omitempty"`
}

// Metric looks up a metric definition by id across all pillars.
func (c *Catalog) Metric(id string) (MetricDefinition, bool) {
	for _, p := range c.Pillars {
		for _, m := range p.Metrics {
			if m.ID == id {
				return m, true
			}
		}
	}
	return MetricDefinition{}, false
}

// Pillar looks up a pillar definition by id.
func (c *Catalog) Pillar(id string) (PillarDefinition, bool) {
	for _, p := range c.Pillars {
		if p.ID == id {
			return p, true
		}
	}
	return PillarDefinition{}, false
}

// PillarWeights returns the pillar id → weight map used by the composite
// calculator.
func (c *Catalog) PillarWeights() map[string]float64 {
	weights := make(map[string]float64, len(c.Pillars))
	for _, p := range c.Pillars {
		weights[p.ID] = p.Weight
	}
	return weights
}

// Label returns the display label for an id, falling back to the id itself
// when no presentation entry exists.
func (c *Catalog) Label(id string) string {
	if pres, ok := c.Presentation[id]; ok && pres.Label != "" {
		return pres.Label
	}
	return id
}
