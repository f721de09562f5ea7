package bench

import (
	"fmt"
	"strconv"
	"time"
)

// StatusSuccess marks a successful attempt; any other status is the
// "Kind: message" string of the failure.
const StatusSuccess = "Success"

// Result is one executed request attempt. Created exactly once by exactly
// one worker, never mutated afterwards.
type Result struct {
	Scenario  string        `json:"scenario"`
	Query     string        `json:"query"`
	Timestamp time.Time     `json:"timestamp"`
	Latency   time.Duration `json:"latency"`
	TookMs    *float64      `json:"took_ms,omitempty"`
	TotalHits *int64        `json:"total_hits,omitempty"`
	Status    string        `json:"status"`
}

func (r Result) Success() bool {
	return r.Status == StatusSuccess
}

// ScenarioSpec is one sweep point: a name and a fixed client count.
type ScenarioSpec struct {
	Name    string `json:"name"`
	Clients int    `json:"clients"`
}

// Sweep builds the conventional concurrency sweep, one spec per client
// count, named C01__clients_1, C02__clients_2, ...
func Sweep(clients []int) []ScenarioSpec {
	specs := make([]ScenarioSpec, 0, len(clients))
	for i, c := range clients {
		specs = append(specs, ScenarioSpec{
			Name:    fmt.Sprintf("C%02d__clients_%d", i+1, c),
			Clients: c,
		})
	}
	return specs
}

// DefaultClients is the standard sweep from 1 to 24 clients.
var DefaultClients = []int{1, 2, 4, 6, 8, 10, 12, 16, 20, 24}

// Metric is an optional statistic. Invalid metrics render as an explicit
// empty cell in reports, never as zero.
type Metric struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Cell renders the metric for delimited output, rounded to two decimals.
func (m Metric) Cell() string {
	if !m.Valid {
		return ""
	}
	return strconv.FormatFloat(m.Value, 'f', 2, 64)
}

func metricOf(v float64, ok bool) Metric {
	if !ok {
		return Metric{}
	}
	return Metric{Value: v, Valid: true}
}

// ScenarioSummary is the derived, read-only summary of one scenario.
// Latency statistics cover successful attempts only.
type ScenarioSummary struct {
	Scenario  string  `json:"scenario"`
	Clients   int     `json:"clients"`
	DurationS float64 `json:"duration_s"`
	Requests  int     `json:"requests"`
	Success   int     `json:"success"`
	Errors    int     `json:"errors"`
	RPS       float64 `json:"rps"`

	LatAvgMs Metric `json:"lat_avg_ms"`
	LatP50Ms Metric `json:"lat_p50_ms"`
	LatP90Ms Metric `json:"lat_p90_ms"`
	LatP95Ms Metric `json:"lat_p95_ms"`
	LatP99Ms Metric `json:"lat_p99_ms"`

	TookAvgMs Metric `json:"took_avg_ms"`
	TookP95Ms Metric `json:"took_p95_ms"`
}
