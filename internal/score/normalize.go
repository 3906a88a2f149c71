// Package score implements the scoring pipeline: raw value normalization,
// pillar aggregation, and the composite maturity calculation. Every function
// here is pure and total over its declared inputs; bad data scores as
// missing, never as an error.
package score

import (
	"strconv"

	"github.com/resilscore/resilscore/internal/catalog"
	"github.com/resilscore/resilscore/internal/types"
)

// DerivedFunc computes the normalized score for a derived-type metric from
// its raw value. ok=false marks the value as missing.
type DerivedFunc func(rawValue any) (score float64, ok bool)

// derivedPlaceholder is returned for derived metrics with no registered
// derivation.
const derivedPlaceholder = 50

// Normalizer converts raw indicator values into 0-100 component scores.
// Derivations for derived-type metrics are injected per metric id; the zero
// Normalizer scores those with a fixed placeholder.
type Normalizer struct {
	derived map[string]DerivedFunc
}

// NewNormalizer creates a Normalizer with no derivations registered.
func NewNormalizer() *Normalizer {
	return &Normalizer{derived: make(map[string]DerivedFunc)}
}

// RegisterDerived installs the derivation for a derived-type metric.
func (n *Normalizer) RegisterDerived(metricID string, fn DerivedFunc) {
	n.derived[metricID] = fn
}

// Normalize converts one raw value into a ComponentScore. An absent raw
// value, or a non-numeric value where a number is required, scores 0 with
// status missing.
func (n *Normalizer) Normalize(m catalog.MetricDefinition, rawValue any) types.ComponentScore {
	cs := types.ComponentScore{
		MetricID: m.ID,
		RawValue: rawValue,
	}

	if rawValue == nil {
		cs.Status = types.StatusMissing
		return cs
	}

	switch m.Type {
	case catalog.TypeBoolean:
		if truthy(rawValue) {
			cs.Normalized = 100
		}

	case catalog.TypePercentage:
		// Thresholds are not applied for percentages: the raw value is
		// already on the target scale and is only clamped.
		v, ok := asFloat(rawValue)
		if !ok {
			cs.Status = types.StatusMissing
			return cs
		}
		cs.Normalized = clamp(v, 0, 100)

	case catalog.TypeNumber:
		v, ok := asFloat(rawValue)
		if !ok {
			cs.Status = types.StatusMissing
			return cs
		}
		cs.Normalized = normalizeNumber(m, v)

	case catalog.TypeEnum:
		cs.Normalized = normalizeEnum(m, rawValue)

	case catalog.TypeDerived:
		fn, ok := n.derived[m.ID]
		if !ok {
			cs.Normalized = derivedPlaceholder
			break
		}
		v, ok := fn(rawValue)
		if !ok {
			cs.Status = types.StatusMissing
			return cs
		}
		cs.Normalized = clamp(v, 0, 100)
	}

	cs.Status = StatusForScore(cs.Normalized)
	return cs
}

// normalizeNumber interpolates a numeric value between the metric's
// thresholds. Complete < Partial means lower is better.
func normalizeNumber(m catalog.MetricDefinition, v float64) float64 {
	if m.Inverted() {
		switch {
		case v <= m.Complete:
			return 100
		case v >= m.Partial:
			return 0
		default:
			return 100 * (1 - (v-m.Complete)/(m.Partial-m.Complete))
		}
	}
	switch {
	case v >= m.Complete:
		return 100
	case v <= m.Partial:
		return 0
	default:
		return 100 * (v - m.Partial) / (m.Complete - m.Partial)
	}
}

// normalizeEnum scores a label by its position in the ordered list, index 0
// being best. Unknown labels score 0.
func normalizeEnum(m catalog.MetricDefinition, rawValue any) float64 {
	label, ok := rawValue.(string)
	if !ok {
		return 0
	}
	n := len(m.EnumValues)
	for i, candidate := range m.EnumValues {
		if candidate != label {
			continue
		}
		if n == 1 {
			return 100
		}
		return 100 * (1 - float64(i)/float64(n-1))
	}
	return 0
}

// StatusForScore classifies a normalized score into a qualitative status.
func StatusForScore(score float64) string {
	switch {
	case score >= 70:
		return types.StatusComplete
	case score >= 30:
		return types.StatusPartial
	default:
		return types.StatusMissing
	}
}

// truthy reports whether a raw boolean-metric value counts as true:
// true, 1, or the string "true".
func truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val == "true"
	default:
		f, ok := asFloat(v)
		return ok && f == 1
	}
}

// asFloat coerces the numeric types the YAML decoder produces, plus numeric
// strings, into a float64.
func asFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
