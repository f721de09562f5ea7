package bench

import (
	"time"

	"searchbench/internal/stats"
)

// Summarize derives a scenario summary from its full result set. Percentiles
// and averages are computed only over successful attempts; failed attempts
// still count toward requests and throughput.
func Summarize(spec ScenarioSpec, results []Result, elapsed time.Duration) ScenarioSummary {
	var latencies []float64
	var tooks []float64
	success := 0
	for _, r := range results {
		if !r.Success() {
			continue
		}
		success++
		latencies = append(latencies, r.Latency.Seconds()*1000)
		if r.TookMs != nil {
			tooks = append(tooks, *r.TookMs)
		}
	}

	total := len(results)
	rps := 0.0
	if elapsed > 0 {
		rps = float64(total) / elapsed.Seconds()
	}

	s := ScenarioSummary{
		Scenario:  spec.Name,
		Clients:   spec.Clients,
		DurationS: elapsed.Seconds(),
		Requests:  total,
		Success:   success,
		Errors:    total - success,
		RPS:       rps,
	}

	s.LatAvgMs = metricOf(stats.Mean(latencies))
	s.LatP50Ms = metricOf(stats.Percentile(latencies, 50))
	s.LatP90Ms = metricOf(stats.Percentile(latencies, 90))
	s.LatP95Ms = metricOf(stats.Percentile(latencies, 95))
	s.LatP99Ms = metricOf(stats.Percentile(latencies, 99))
	s.TookAvgMs = metricOf(stats.Mean(tooks))
	s.TookP95Ms = metricOf(stats.Percentile(tooks, 95))

	return s
}
