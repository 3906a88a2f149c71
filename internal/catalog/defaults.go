package catalog

// Default pillar weights, applied when a catalog file omits a pillar's
// weight. Hazard control carries the largest share, reflecting
// prevention-first prioritization.
var defaultPillarWeights = map[string]float64{
	"governance":     0.20,
	"hazard-control": 0.35,
	"vigilance":      0.25,
	"restoration":    0.20,
}

// DefaultPillarWeight returns the default weight for a known pillar id.
func DefaultPillarWeight(pillarID string) (float64, bool) {
	w, ok := defaultPillarWeights[pillarID]
	return w, ok
}

// applyDefaultWeights fills in default pillar weights for pillars that omit
// one and have a known default.
func applyDefaultWeights(c *Catalog) {
	for i, p := range c.Pillars {
		if p.Weight != 0 {
			continue
		}
		if w, ok := DefaultPillarWeight(p.ID); ok {
			c.Pillars[i].Weight = w
		}
	}
}
