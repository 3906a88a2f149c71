package score

import (
	"github.com/resilscore/resilscore/internal/catalog"
	"github.com/resilscore/resilscore/internal/record"
	"github.com/resilscore/resilscore/internal/types"
)

// AggregatePillar normalizes every metric in the pillar and combines the
// results into a weighted pillar score. A pillar whose metrics are all
// missing still scores as the weighted sum of zeros; only the composite
// calculator treats pillar absence specially, and it does so by omission,
// not here.
func (n *Normalizer) AggregatePillar(p catalog.PillarDefinition, rec record.Record) types.PillarScore {
	ps := types.PillarScore{
		PillarID:      p.ID,
		WeightValid:   p.WeightsValid(),
		Contributions: make([]types.MetricContribution, 0, len(p.Metrics)),
	}

	for _, m := range p.Metrics {
		raw, ok := rec.Lookup(m.FieldKey())
		if !ok {
			raw = nil
		}
		cs := n.Normalize(m, raw)
		contribution := cs.Normalized * m.Weight
		ps.Score += contribution
		ps.Contributions = append(ps.Contributions, types.MetricContribution{
			MetricID:     m.ID,
			Normalized:   cs.Normalized,
			Weight:       m.Weight,
			Contribution: contribution,
			Status:       cs.Status,
		})
	}

	return ps
}
