package catalog

import (
	"fmt"
	"math"

	"github.com/resilscore/resilscore/internal/types"
)

// knownTypes is the set of accepted scoring types.
var knownTypes = map[ScoringType]bool{
	TypeBoolean:    true,
	TypePercentage: true,
	TypeNumber:     true,
	TypeEnum:       true,
	TypeDerived:    true,
}

// Validate checks the catalog's internal consistency. Weight-sum mismatches
// are warnings: computation proceeds with the weights as given. Unknown
// scoring types and duplicate ids are errors.
func (c *Catalog) Validate() []types.Issue {
	var issues []types.Issue
	seen := make(map[string]bool)

	for _, p := range c.Pillars {
		if p.ID == "" {
			issues = append(issues, types.Issue{
				Message:  "pillar is missing an id",
				Severity: types.SeverityError,
			})
			continue
		}
		if seen[p.ID] {
			issues = append(issues, types.Issue{
				ID:       p.ID,
				Message:  "duplicate pillar id",
				Severity: types.SeverityError,
			})
		}
		seen[p.ID] = true

		if !p.WeightsValid() {
			issues = append(issues, types.Issue{
				ID:       p.ID,
				Message:  fmt.Sprintf("metric weights sum to %.3f, expected 1.0", p.MetricWeightSum()),
				Severity: types.SeverityWarning,
			})
		}

		for _, m := range p.Metrics {
			issues = append(issues, validateMetric(p.ID, m, seen)...)
		}
	}

	if len(c.Pillars) > 0 {
		var sum float64
		for _, p := range c.Pillars {
			sum += p.Weight
		}
		if math.Abs(sum-1.0) >= WeightTolerance {
			issues = append(issues, types.Issue{
				Message:  fmt.Sprintf("pillar weights sum to %.3f, expected 1.0", sum),
				Severity: types.SeverityWarning,
			})
		}
	}

	return issues
}

func validateMetric(pillarID string, m MetricDefinition, seen map[string]bool) []types.Issue {
	var issues []types.Issue

	if m.ID == "" {
		return append(issues, types.Issue{
			ID:       pillarID,
			Message:  "metric is missing an id",
			Severity: types.SeverityError,
		})
	}
	if seen[m.ID] {
		issues = append(issues, types.Issue{
			ID:       m.ID,
			Message:  "duplicate metric id",
			Severity: types.SeverityError,
		})
	}
	seen[m.ID] = true

	if !knownTypes[m.Type] {
		issues = append(issues, types.Issue{
			ID:       m.ID,
			Message:  fmt.Sprintf("unknown scoring type %q", m.Type),
			Severity: types.SeverityError,
		})
	}

	switch m.Type {
	case TypeEnum:
		if len(m.EnumValues) == 0 {
			issues = append(issues, types.Issue{
				ID:       m.ID,
				Message:  "enum metric has no enumValues",
				Severity: types.SeverityError,
			})
		}
	case TypeNumber:
		if m.Complete == m.Partial {
			issues = append(issues, types.Issue{
				ID:       m.ID,
				Message:  "number metric has equal complete and partial thresholds",
				Severity: types.SeverityError,
			})
		}
	}

	return issues
}

// HasErrors reports whether any issue in the list is error-severity.
func HasErrors(issues []types.Issue) bool {
	for _, issue := range issues {
		if issue.Severity == types.SeverityError {
			return true
		}
	}
	return false
}
