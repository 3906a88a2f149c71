package rules

import (
	"sort"

	"github.com/resilscore/resilscore/internal/record"
	"github.com/resilscore/resilscore/internal/score"
)

// Outcome reports the result of applying a rule set to a base score.
// AppliedRuleIDs preserves application order, giving callers an audit trail
// of which rules fired and in what sequence. SkippedRuleIDs lists rules
// whose conditions could not be resolved for this record.
type Outcome struct {
	FinalScore     float64  `json:"final_score"`
	AppliedRuleIDs []string `json:"applied_rule_ids,omitempty"`
	SkippedRuleIDs []string `json:"skipped_rule_ids,omitempty"`
}

// Apply runs the active rules against a country record in priority order
// and returns the adjusted score. Impacts are not commutative: a set after
// an add overwrites it, an add after a set survives. Equal priorities keep
// their original list order. The final score is clamped to the maturity
// scale.
func Apply(baseScore float64, ruleList []Rule, rec record.Record) Outcome {
	active := make([]Rule, 0, len(ruleList))
	for _, r := range ruleList {
		if r.Active {
			active = append(active, r)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Priority < active[j].Priority
	})

	out := Outcome{FinalScore: baseScore}
	for _, r := range active {
		matched, err := eval(r.Condition, rec)
		if err != nil {
			out.SkippedRuleIDs = append(out.SkippedRuleIDs, r.ID)
			continue
		}
		if !matched {
			continue
		}

		switch r.Impact {
		case ImpactAdd:
			out.FinalScore += r.Value
		case ImpactMultiply:
			out.FinalScore *= r.Value
		case ImpactCap:
			if out.FinalScore > r.Value {
				out.FinalScore = r.Value
			}
		case ImpactSet:
			out.FinalScore = r.Value
		}
		out.AppliedRuleIDs = append(out.AppliedRuleIDs, r.ID)
	}

	if out.FinalScore < score.MaturityMin {
		out.FinalScore = score.MaturityMin
	}
	if out.FinalScore > score.MaturityMax {
		out.FinalScore = score.MaturityMax
	}
	return out
}
