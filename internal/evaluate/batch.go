package evaluate

import (
	"sync"

	"github.com/resilscore/resilscore/internal/record"
)

// EvaluateAll scores a batch of countries, fanning out over at most
// concurrency workers. Evaluations share no mutable state, so the only
// coordination needed is writing each result to its own slot; reports come
// back in input order regardless of scheduling. Concurrency below 2 runs
// the batch sequentially.
func (e *Evaluator) EvaluateAll(recs []record.Record, concurrency int) []CountryReport {
	reports := make([]CountryReport, len(recs))

	if concurrency < 2 || len(recs) < 2 {
		for i, rec := range recs {
			reports[i] = e.EvaluateCountry(rec)
		}
		return reports
	}

	if concurrency > len(recs) {
		concurrency = len(recs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				reports[i] = e.EvaluateCountry(recs[i])
			}
		}()
	}
	for i := range recs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return reports
}
