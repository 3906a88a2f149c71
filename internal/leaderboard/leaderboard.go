// Package leaderboard ranks countries by normalized score for a single
// metric. Rankings are recomputed per query and never cached.
package leaderboard

import (
	"sort"

	"github.com/resilscore/resilscore/internal/catalog"
	"github.com/resilscore/resilscore/internal/record"
	"github.com/resilscore/resilscore/internal/score"
)

// Entry is one ranked country. RawValue is carried alongside the normalized
// score for transparency in benchmark displays.
type Entry struct {
	CountryID   string  `json:"country_id"`
	CountryName string  `json:"country_name"`
	Normalized  float64 `json:"normalized"`
	RawValue    any     `json:"raw_value"`
}

// Leaders is the ranked top-N result for one metric.
type Leaders struct {
	MetricID string  `json:"metric_id"`
	Entries  []Entry `json:"entries"`
}

// Rank normalizes the metric for every country and returns the top-N
// performers, highest score first. Countries without a raw value are
// excluded entirely. Ties break on country id ascending so published
// rankings are reproducible.
func Rank(n *score.Normalizer, m catalog.MetricDefinition, countries []record.Record, topN int) Leaders {
	entries := make([]Entry, 0, len(countries))
	for _, rec := range countries {
		raw, ok := rec.Lookup(m.FieldKey())
		if !ok {
			continue
		}
		cs := n.Normalize(m, raw)
		entries = append(entries, Entry{
			CountryID:   rec.ID,
			CountryName: rec.DisplayName(),
			Normalized:  cs.Normalized,
			RawValue:    raw,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Normalized != entries[j].Normalized {
			return entries[i].Normalized > entries[j].Normalized
		}
		return entries[i].CountryID < entries[j].CountryID
	})

	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	return Leaders{MetricID: m.ID, Entries: entries}
}
