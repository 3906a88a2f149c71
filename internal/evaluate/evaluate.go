// Package evaluate orchestrates the full scoring pipeline for a country:
// normalization, pillar aggregation, the composite calculation, and the
// rule engine pass over the result.
package evaluate

import (
	"fmt"

	"github.com/resilscore/resilscore/internal/catalog"
	"github.com/resilscore/resilscore/internal/record"
	"github.com/resilscore/resilscore/internal/rules"
	"github.com/resilscore/resilscore/internal/score"
	"github.com/resilscore/resilscore/internal/types"
)

// Evaluator runs evaluations against one immutable catalog and rule set.
// It is safe for concurrent use; swapping configuration means building a
// new Evaluator between batches.
type Evaluator struct {
	cat        *catalog.Catalog
	ruleList   []rules.Rule
	normalizer *score.Normalizer
	weights    map[string]float64
}

// Option customizes an Evaluator.
type Option func(*Evaluator)

// WithDerived installs the derivation for a derived-type metric.
func WithDerived(metricID string, fn score.DerivedFunc) Option {
	return func(e *Evaluator) {
		e.normalizer.RegisterDerived(metricID, fn)
	}
}

// New creates an Evaluator. The rule set is validated here so that type
// errors surface before any country is evaluated.
func New(cat *catalog.Catalog, ruleList []rules.Rule, opts ...Option) (*Evaluator, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if err := rules.Validate(ruleList); err != nil {
		return nil, err
	}

	e := &Evaluator{
		cat:        cat,
		ruleList:   ruleList,
		normalizer: score.NewNormalizer(),
		weights:    cat.PillarWeights(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// CountryReport is the full evaluation result for one country.
type CountryReport struct {
	CountryID   string               `json:"country_id"`
	CountryName string               `json:"country_name"`
	Pillars     []types.PillarScore  `json:"pillars"`
	Composite   types.CompositeScore `json:"composite"`
	Rules       rules.Outcome        `json:"rules"`

	// FinalScore is the rule-adjusted maturity score, nil when the
	// composite was absent and rules never ran.
	FinalScore *float64 `json:"final_score,omitempty"`
	FinalStage string   `json:"final_stage,omitempty"`
}

// EvaluateCountry scores one country through the whole pipeline.
func (e *Evaluator) EvaluateCountry(rec record.Record) CountryReport {
	report := CountryReport{
		CountryID:   rec.ID,
		CountryName: rec.DisplayName(),
		Pillars:     make([]types.PillarScore, 0, len(e.cat.Pillars)),
	}

	pillarScores := make(map[string]float64, len(e.cat.Pillars))
	for _, p := range e.cat.Pillars {
		ps := e.normalizer.AggregatePillar(p, rec)
		report.Pillars = append(report.Pillars, ps)
		pillarScores[p.ID] = ps.Score
	}

	report.Composite = score.ComputeComposite(pillarScores, e.weights)
	if report.Composite.MaturityScore == nil {
		return report
	}

	report.Rules = rules.Apply(*report.Composite.MaturityScore, e.ruleList, rec)
	final := report.Rules.FinalScore
	report.FinalScore = &final
	report.FinalStage = score.StageForScore(final)
	return report
}

// Normalizer exposes the evaluator's normalizer for leaderboard queries so
// registered derivations apply there too.
func (e *Evaluator) Normalizer() *score.Normalizer {
	return e.normalizer
}

// Catalog returns the evaluator's catalog.
func (e *Evaluator) Catalog() *catalog.Catalog {
	return e.cat
}
