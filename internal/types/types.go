// Package types provides shared types used across the resilscore codebase.
// This package is at the bottom of the dependency graph and should not import
// any other internal packages to avoid circular dependencies.
package types

// Issue represents a configuration validation problem.
type Issue struct {
	ID       string // metric, pillar, or rule id the issue concerns
	Message  string
	Severity string // error, warning
}

// Severity level constants.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Metric status constants. Status is derived from the normalized score,
// independent of scoring type.
const (
	StatusComplete = "complete"
	StatusPartial  = "partial"
	StatusMissing  = "missing"
)

// Maturity stage constants, ordered worst to best.
const (
	StageReactive  = "Reactive"
	StageCompliant = "Compliant"
	StageProactive = "Proactive"
	StageResilient = "Resilient"
)

// ComponentScore is the result of normalizing one metric for one country.
type ComponentScore struct {
	MetricID   string  `json:"metric_id"`
	Normalized float64 `json:"normalized"` // 0-100
	Status     string  `json:"status"`
	RawValue   any     `json:"raw_value,omitempty"`
}

// MetricContribution is one metric's share of a pillar score.
type MetricContribution struct {
	MetricID     string  `json:"metric_id"`
	Normalized   float64 `json:"normalized"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"` // Normalized * Weight
	Status       string  `json:"status"`
}

// PillarScore aggregates a pillar's metric scores. Score may leave [0,100]
// when metric weights are misconfigured; WeightValid surfaces that instead of
// clamping so callers can flag bad configuration.
type PillarScore struct {
	PillarID      string               `json:"pillar_id"`
	Score         float64              `json:"score"`
	WeightValid   bool                 `json:"weight_valid"`
	Contributions []MetricContribution `json:"contributions"`
}

// CompositeScore is the country-level maturity result. The pointers are nil
// when no pillar score was available to average.
type CompositeScore struct {
	WeightedAverage *float64 `json:"weighted_average,omitempty"` // 0-100
	MaturityScore   *float64 `json:"maturity_score,omitempty"`   // 1.0-4.0
	Stage           string   `json:"stage,omitempty"`
}
