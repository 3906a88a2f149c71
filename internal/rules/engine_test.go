package rules

import (
	"math"
	"reflect"
	"testing"

	"github.com/resilscore/resilscore/internal/record"
)

func baseRule(id string, priority int, impact ImpactType, value float64) Rule {
	return Rule{
		ID:        id,
		Priority:  priority,
		Condition: Condition{Type: CondBase},
		Impact:    impact,
		Value:     value,
		Active:    true,
	}
}

func emptyRecord() record.Record {
	return record.Record{ID: "xx", Fields: map[string]any{}}
}

func TestApplyOrderingAsymmetry(t *testing.T) {
	// set-then-add and add-then-set give different answers; priority order
	// is the contract.
	setRule := baseRule("set-floor", 1, ImpactSet, 2.0)
	addRule := baseRule("add-bonus", 2, ImpactAdd, 0.5)

	t.Run("set before add", func(t *testing.T) {
		out := Apply(3.0, []Rule{setRule, addRule}, emptyRecord())
		if out.FinalScore != 2.5 {
			t.Errorf("FinalScore = %v, want 2.5", out.FinalScore)
		}
		if !reflect.DeepEqual(out.AppliedRuleIDs, []string{"set-floor", "add-bonus"}) {
			t.Errorf("AppliedRuleIDs = %v, want [set-floor add-bonus]", out.AppliedRuleIDs)
		}
	})

	t.Run("add before set", func(t *testing.T) {
		setRule.Priority = 2
		addRule.Priority = 1
		out := Apply(3.0, []Rule{setRule, addRule}, emptyRecord())
		if out.FinalScore != 2.0 {
			t.Errorf("FinalScore = %v, want 2.0", out.FinalScore)
		}
		if !reflect.DeepEqual(out.AppliedRuleIDs, []string{"add-bonus", "set-floor"}) {
			t.Errorf("AppliedRuleIDs = %v, want [add-bonus set-floor]", out.AppliedRuleIDs)
		}
	})
}

func TestApplyImpacts(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
		base  float64
		want  float64
	}{
		{"add", []Rule{baseRule("a", 1, ImpactAdd, 0.3)}, 2.0, 2.3},
		{"multiply", []Rule{baseRule("m", 1, ImpactMultiply, 1.5)}, 2.0, 3.0},
		{"cap reduces", []Rule{baseRule("c", 1, ImpactCap, 2.5)}, 3.2, 2.5},
		{"cap leaves lower score", []Rule{baseRule("c", 1, ImpactCap, 2.5)}, 2.0, 2.0},
		{"set", []Rule{baseRule("s", 1, ImpactSet, 3.7)}, 1.5, 3.7},
		{"clamps high", []Rule{baseRule("a", 1, ImpactAdd, 5.0)}, 3.0, 4.0},
		{"clamps low", []Rule{baseRule("a", 1, ImpactAdd, -5.0)}, 3.0, 1.0},
		{"no rules", nil, 2.8, 2.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Apply(tt.base, tt.rules, emptyRecord())
			if math.Abs(out.FinalScore-tt.want) > 1e-9 {
				t.Errorf("FinalScore = %v, want %v", out.FinalScore, tt.want)
			}
		})
	}
}

func TestApplyStableTieBreak(t *testing.T) {
	// Equal priorities keep list order: set then add yields 1.5 + 0.5.
	rules := []Rule{
		baseRule("first", 5, ImpactSet, 1.5),
		baseRule("second", 5, ImpactAdd, 0.5),
	}
	out := Apply(3.0, rules, emptyRecord())
	if out.FinalScore != 2.0 {
		t.Errorf("FinalScore = %v, want 2.0", out.FinalScore)
	}
	if !reflect.DeepEqual(out.AppliedRuleIDs, []string{"first", "second"}) {
		t.Errorf("AppliedRuleIDs = %v, want [first second]", out.AppliedRuleIDs)
	}
}

func TestApplyInactiveFiltered(t *testing.T) {
	inactive := baseRule("off", 1, ImpactSet, 1.0)
	inactive.Active = false

	out := Apply(3.0, []Rule{inactive}, emptyRecord())
	if out.FinalScore != 3.0 {
		t.Errorf("FinalScore = %v, want 3.0", out.FinalScore)
	}
	if len(out.AppliedRuleIDs) != 0 {
		t.Errorf("AppliedRuleIDs = %v, want empty", out.AppliedRuleIDs)
	}
}

func TestApplyConditions(t *testing.T) {
	rec := record.Record{
		ID: "pt",
		Fields: map[string]any{
			"population-density": 112.0,
			"coastal":            true,
			"income-group":       "upper-middle",
		},
	}

	tests := []struct {
		name      string
		condition Condition
		wantFired bool
	}{
		{"threshold lt true", Condition{Type: CondThreshold, Field: "population-density", Operator: "<", Value: 200}, true},
		{"threshold lt false", Condition{Type: CondThreshold, Field: "population-density", Operator: "<", Value: 100}, false},
		{"threshold lte boundary", Condition{Type: CondThreshold, Field: "population-density", Operator: "<=", Value: 112}, true},
		{"threshold gte boundary", Condition{Type: CondThreshold, Field: "population-density", Operator: ">=", Value: 112}, true},
		{"threshold eq", Condition{Type: CondThreshold, Field: "population-density", Operator: "==", Value: 112}, true},
		{"boolean match", Condition{Type: CondBoolean, Field: "coastal", Expected: true}, true},
		{"boolean mismatch", Condition{Type: CondBoolean, Field: "coastal", Expected: false}, false},
		{"enum match", Condition{Type: CondEnum, Field: "income-group", Match: "upper-middle"}, true},
		{"enum mismatch", Condition{Type: CondEnum, Field: "income-group", Match: "high"}, false},
		{"base always fires", Condition{Type: CondBase}, true},
		{
			"compound and",
			Condition{Type: CondCompound, Op: OpAnd, Conditions: []Condition{
				{Type: CondBoolean, Field: "coastal", Expected: true},
				{Type: CondThreshold, Field: "population-density", Operator: ">", Value: 100},
			}},
			true,
		},
		{
			"compound and short on false",
			Condition{Type: CondCompound, Op: OpAnd, Conditions: []Condition{
				{Type: CondBoolean, Field: "coastal", Expected: false},
				{Type: CondThreshold, Field: "population-density", Operator: ">", Value: 100},
			}},
			false,
		},
		{
			"compound or",
			Condition{Type: CondCompound, Op: OpOr, Conditions: []Condition{
				{Type: CondEnum, Field: "income-group", Match: "high"},
				{Type: CondBoolean, Field: "coastal", Expected: true},
			}},
			true,
		},
		{
			"nested compound",
			Condition{Type: CondCompound, Op: OpOr, Conditions: []Condition{
				{Type: CondEnum, Field: "income-group", Match: "high"},
				{Type: CondCompound, Op: OpAnd, Conditions: []Condition{
					{Type: CondBoolean, Field: "coastal", Expected: true},
					{Type: CondThreshold, Field: "population-density", Operator: "<", Value: 200},
				}},
			}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Rule{
				ID: "r", Priority: 1, Condition: tt.condition,
				Impact: ImpactAdd, Value: 0.5, Active: true,
			}
			out := Apply(2.0, []Rule{r}, rec)
			fired := len(out.AppliedRuleIDs) == 1
			if fired != tt.wantFired {
				t.Errorf("rule fired = %v, want %v", fired, tt.wantFired)
			}
		})
	}
}

func TestApplySkipsUnresolvable(t *testing.T) {
	rec := record.Record{ID: "pt", Fields: map[string]any{"coastal": "yes"}}

	rules := []Rule{
		{
			ID: "missing-field", Priority: 1,
			Condition: Condition{Type: CondThreshold, Field: "gdp", Operator: ">", Value: 1},
			Impact:    ImpactSet, Value: 1.0, Active: true,
		},
		{
			ID: "wrong-type", Priority: 2,
			Condition: Condition{Type: CondBoolean, Field: "coastal", Expected: true},
			Impact:    ImpactSet, Value: 1.0, Active: true,
		},
		{
			ID: "compound-with-bad-leg", Priority: 3,
			Condition: Condition{Type: CondCompound, Op: OpOr, Conditions: []Condition{
				{Type: CondBase},
				{Type: CondThreshold, Field: "gdp", Operator: ">", Value: 1},
			}},
			Impact: ImpactSet, Value: 1.0, Active: true,
		},
		baseRule("survivor", 4, ImpactAdd, 0.25),
	}

	out := Apply(3.0, rules, rec)

	if out.FinalScore != 3.25 {
		t.Errorf("FinalScore = %v, want 3.25", out.FinalScore)
	}
	wantSkipped := []string{"missing-field", "wrong-type", "compound-with-bad-leg"}
	if !reflect.DeepEqual(out.SkippedRuleIDs, wantSkipped) {
		t.Errorf("SkippedRuleIDs = %v, want %v", out.SkippedRuleIDs, wantSkipped)
	}
	if !reflect.DeepEqual(out.AppliedRuleIDs, []string{"survivor"}) {
		t.Errorf("AppliedRuleIDs = %v, want [survivor]", out.AppliedRuleIDs)
	}
}

func TestApplyDeterministic(t *testing.T) {
	rec := record.Record{ID: "pt", Fields: map[string]any{"coastal": true}}
	rules := []Rule{
		baseRule("a", 2, ImpactAdd, 0.1),
		baseRule("b", 1, ImpactMultiply, 1.1),
		{
			ID: "c", Priority: 3,
			Condition: Condition{Type: CondBoolean, Field: "coastal", Expected: true},
			Impact:    ImpactCap, Value: 3.0, Active: true,
		},
	}

	first := Apply(2.8, rules, rec)
	for i := 0; i < 10; i++ {
		if got := Apply(2.8, rules, rec); !reflect.DeepEqual(got, first) {
			t.Fatalf("Apply() is not deterministic: %+v vs %+v", got, first)
		}
	}
}
