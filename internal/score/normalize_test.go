package score

import (
	"math"
	"testing"

	"github.com/resilscore/resilscore/internal/catalog"
	"github.com/resilscore/resilscore/internal/types"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNormalizeBoolean(t *testing.T) {
	metric := catalog.MetricDefinition{ID: "ew-plan", Type: catalog.TypeBoolean, Weight: 1}

	tests := []struct {
		name       string
		raw        any
		wantScore  float64
		wantStatus string
	}{
		{"true bool", true, 100, types.StatusComplete},
		{"false bool", false, 0, types.StatusMissing},
		{"numeric one", 1, 100, types.StatusComplete},
		{"numeric zero", 0, 0, types.StatusMissing},
		{"string true", "true", 100, types.StatusComplete},
		{"string false", "false", 0, types.StatusMissing},
		{"absent", nil, 0, types.StatusMissing},
	}

	n := NewNormalizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := n.Normalize(metric, tt.raw)
			if cs.Normalized != tt.wantScore {
				t.Errorf("Normalize() score = %v, want %v", cs.Normalized, tt.wantScore)
			}
			if cs.Status != tt.wantStatus {
				t.Errorf("Normalize() status = %q, want %q", cs.Status, tt.wantStatus)
			}
		})
	}
}

func TestNormalizePercentage(t *testing.T) {
	// Thresholds are deliberately set and must be ignored: percentage is a
	// pure clamp.
	metric := catalog.MetricDefinition{
		ID: "coverage", Type: catalog.TypePercentage,
		Complete: 90, Partial: 40, Weight: 1,
	}

	tests := []struct {
		name      string
		raw       any
		wantScore float64
	}{
		{"in range", 62.5, 62.5},
		{"below zero clamps", -5.0, 0},
		{"above hundred clamps", 130.0, 100},
		{"int value", 45, 45},
		{"numeric string", "73.5", 73.5},
		{"threshold ignored", 39.0, 39}, // below Partial, still not 0
	}

	n := NewNormalizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := n.Normalize(metric, tt.raw)
			if !almostEqual(cs.Normalized, tt.wantScore) {
				t.Errorf("Normalize() score = %v, want %v", cs.Normalized, tt.wantScore)
			}
		})
	}

	t.Run("non-numeric is missing", func(t *testing.T) {
		cs := n.Normalize(metric, "high")
		if cs.Normalized != 0 || cs.Status != types.StatusMissing {
			t.Errorf("Normalize() = (%v, %q), want (0, missing)", cs.Normalized, cs.Status)
		}
	})
}

func TestNormalizeNumber(t *testing.T) {
	// Complete > Partial: higher raw value is better.
	higherBetter := catalog.MetricDefinition{
		ID: "shelters", Type: catalog.TypeNumber,
		Complete: 90, Partial: 40, Weight: 1,
	}
	// Complete < Partial: lower raw value is better (inverted).
	lowerBetter := catalog.MetricDefinition{
		ID: "response-hours", Type: catalog.TypeNumber,
		Complete: 10, Partial: 50, Weight: 1,
	}

	tests := []struct {
		name      string
		metric    catalog.MetricDefinition
		raw       any
		wantScore float64
	}{
		{"at complete threshold", higherBetter, 90.0, 100},
		{"above complete", higherBetter, 120.0, 100},
		{"at partial threshold", higherBetter, 40.0, 0},
		{"below partial", higherBetter, 10.0, 0},
		{"midpoint interpolates", higherBetter, 65.0, 50},
		{"inverted at complete", lowerBetter, 10.0, 100},
		{"inverted below complete", lowerBetter, 2.0, 100},
		{"inverted at partial", lowerBetter, 50.0, 0},
		{"inverted above partial", lowerBetter, 80.0, 0},
		{"inverted midpoint", lowerBetter, 30.0, 50},
	}

	n := NewNormalizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := n.Normalize(tt.metric, tt.raw)
			if !almostEqual(cs.Normalized, tt.wantScore) {
				t.Errorf("Normalize(%v) score = %v, want %v", tt.raw, cs.Normalized, tt.wantScore)
			}
		})
	}
}

func TestNormalizeEnum(t *testing.T) {
	metric := catalog.MetricDefinition{
		ID: "building-codes", Type: catalog.TypeEnum,
		EnumValues: []string{"Mandatory", "Advisory", "None"},
		Weight:     1,
	}

	tests := []struct {
		name      string
		raw       any
		wantScore float64
	}{
		{"best label", "Mandatory", 100},
		{"middle label", "Advisory", 50},
		{"worst label", "None", 0},
		{"unknown label", "Voluntary", 0},
		{"non-string", 3, 0},
	}

	n := NewNormalizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := n.Normalize(metric, tt.raw)
			if !almostEqual(cs.Normalized, tt.wantScore) {
				t.Errorf("Normalize(%v) score = %v, want %v", tt.raw, cs.Normalized, tt.wantScore)
			}
		})
	}

	t.Run("single label always 100", func(t *testing.T) {
		single := catalog.MetricDefinition{
			ID: "single", Type: catalog.TypeEnum,
			EnumValues: []string{"Present"}, Weight: 1,
		}
		cs := n.Normalize(single, "Present")
		if cs.Normalized != 100 {
			t.Errorf("Normalize() score = %v, want 100", cs.Normalized)
		}
	})
}

func TestNormalizeDerived(t *testing.T) {
	metric := catalog.MetricDefinition{ID: "risk-index", Type: catalog.TypeDerived, Weight: 1}

	t.Run("placeholder without derivation", func(t *testing.T) {
		n := NewNormalizer()
		cs := n.Normalize(metric, 12.0)
		if cs.Normalized != 50 {
			t.Errorf("Normalize() score = %v, want placeholder 50", cs.Normalized)
		}
		if cs.Status != types.StatusPartial {
			t.Errorf("Normalize() status = %q, want %q", cs.Status, types.StatusPartial)
		}
	})

	t.Run("registered derivation applies", func(t *testing.T) {
		n := NewNormalizer()
		n.RegisterDerived("risk-index", func(raw any) (float64, bool) {
			v, _ := raw.(float64)
			return v * 10, true
		})
		cs := n.Normalize(metric, 8.0)
		if cs.Normalized != 80 {
			t.Errorf("Normalize() score = %v, want 80", cs.Normalized)
		}
	})

	t.Run("derivation result clamps", func(t *testing.T) {
		n := NewNormalizer()
		n.RegisterDerived("risk-index", func(raw any) (float64, bool) {
			return 250, true
		})
		cs := n.Normalize(metric, 1.0)
		if cs.Normalized != 100 {
			t.Errorf("Normalize() score = %v, want 100", cs.Normalized)
		}
	})

	t.Run("derivation can report missing", func(t *testing.T) {
		n := NewNormalizer()
		n.RegisterDerived("risk-index", func(raw any) (float64, bool) {
			return 0, false
		})
		cs := n.Normalize(metric, 1.0)
		if cs.Status != types.StatusMissing || cs.Normalized != 0 {
			t.Errorf("Normalize() = (%v, %q), want (0, missing)", cs.Normalized, cs.Status)
		}
	})
}

func TestStatusForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, types.StatusComplete},
		{70, types.StatusComplete},
		{69.9, types.StatusPartial},
		{30, types.StatusPartial},
		{29.9, types.StatusMissing},
		{0, types.StatusMissing},
	}

	for _, tt := range tests {
		if got := StatusForScore(tt.score); got != tt.want {
			t.Errorf("StatusForScore(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

// Normalized scores stay in [0,100] for every scoring type and a spread of
// raw values, and repeated calls give identical results.
func TestNormalizeBounds(t *testing.T) {
	metrics := []catalog.MetricDefinition{
		{ID: "b", Type: catalog.TypeBoolean, Weight: 1},
		{ID: "p", Type: catalog.TypePercentage, Weight: 1},
		{ID: "n1", Type: catalog.TypeNumber, Complete: 90, Partial: 40, Weight: 1},
		{ID: "n2", Type: catalog.TypeNumber, Complete: 10, Partial: 50, Weight: 1},
		{ID: "e", Type: catalog.TypeEnum, EnumValues: []string{"A", "B", "C", "D"}, Weight: 1},
		{ID: "d", Type: catalog.TypeDerived, Weight: 1},
	}
	rawValues := []any{nil, true, false, -1e9, -3.5, 0, 0.5, 1, 42, 99.9, 100, 1e9, "A", "D", "bogus", "12.3"}

	n := NewNormalizer()
	for _, m := range metrics {
		for _, raw := range rawValues {
			first := n.Normalize(m, raw)
			if first.Normalized < 0 || first.Normalized > 100 {
				t.Errorf("Normalize(%s, %v) = %v, outside [0,100]", m.ID, raw, first.Normalized)
			}
			second := n.Normalize(m, raw)
			if first.Normalized != second.Normalized || first.Status != second.Status {
				t.Errorf("Normalize(%s, %v) is not deterministic", m.ID, raw)
			}
		}
	}
}
