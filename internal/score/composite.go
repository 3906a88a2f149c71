package score

import "github.com/resilscore/resilscore/internal/types"

// Maturity scale bounds.
const (
	MaturityMin = 1.0
	MaturityMax = 4.0
)

// ComputeComposite combines pillar scores into the overall maturity result.
// A pillar contributes only when present in scores; its weight is then
// included in the divisor, so the average renormalizes over available
// pillars. An all-zero pillar still counts; absence is signalled by leaving
// the pillar out of scores entirely. With no pillars present the composite
// is absent.
func ComputeComposite(scores map[string]float64, weights map[string]float64) types.CompositeScore {
	var weightedSum, weightSum float64
	for pillarID, weight := range weights {
		s, ok := scores[pillarID]
		if !ok {
			continue
		}
		weightedSum += s * weight
		weightSum += weight
	}

	if weightSum == 0 {
		return types.CompositeScore{}
	}

	avg := weightedSum / weightSum
	maturity := MaturityFromAverage(avg)
	return types.CompositeScore{
		WeightedAverage: &avg,
		MaturityScore:   &maturity,
		Stage:           StageForScore(maturity),
	}
}

// MaturityFromAverage maps a 0-100 weighted average onto the 1.0-4.0
// maturity scale.
func MaturityFromAverage(avg float64) float64 {
	return clamp(MaturityMin+(avg/100)*3.0, MaturityMin, MaturityMax)
}

// StageForScore returns the qualitative stage for a maturity score.
func StageForScore(maturity float64) string {
	switch {
	case maturity >= 3.6:
		return types.StageResilient
	case maturity >= 3.0:
		return types.StageProactive
	case maturity >= 2.0:
		return types.StageCompliant
	default:
		return types.StageReactive
	}
}
