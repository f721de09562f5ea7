// Package report writes the per-request logs and the cross-scenario
// summary produced by a sweep.
package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"searchbench/internal/bench"
)

// PerRequestHeader is the column layout of a scenario's request log.
var PerRequestHeader = []string{
	"scenario", "query", "epoch", "latency_s", "took_ms", "total_hits", "status",
}

// SummaryHeader is the column layout of the aggregate report.
var SummaryHeader = []string{
	"scenario", "clients", "duration_s",
	"requests", "success", "errors", "rps",
	"lat_avg_ms", "lat_p50_ms", "lat_p90_ms", "lat_p95_ms", "lat_p99_ms",
	"took_avg_ms", "took_p95_ms",
}

// Writer persists sweep output under one output directory:
// per_request_logs/<scenario>.csv and scenarios_report.csv.
type Writer struct {
	Dir string
}

// WriteScenarioLog writes one row per result, header first, and returns the
// file path. Missing took/hits values are explicit empty cells.
func (w Writer) WriteScenarioLog(scenario string, results []bench.Result) (string, error) {
	dir := filepath.Join(w.Dir, "per_request_logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "creating per-request log directory")
	}

	path := filepath.Join(dir, scenario+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "creating per-request log")
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if err := cw.Write(PerRequestHeader); err != nil {
		return "", err
	}
	for _, r := range results {
		took := ""
		if r.TookMs != nil {
			took = strconv.FormatFloat(*r.TookMs, 'f', -1, 64)
		}
		hits := ""
		if r.TotalHits != nil {
			hits = strconv.FormatInt(*r.TotalHits, 10)
		}
		row := []string{
			r.Scenario,
			r.Query,
			strconv.FormatFloat(float64(r.Timestamp.UnixNano())/1e9, 'f', 6, 64),
			strconv.FormatFloat(r.Latency.Seconds(), 'f', 6, 64),
			took,
			hits,
			r.Status,
		}
		if err := cw.Write(row); err != nil {
			return "", err
		}
	}
	cw.Flush()
	return path, cw.Error()
}

// WriteSummaryReport writes one row per scenario in input order and returns
// the file path.
func (w Writer) WriteSummaryReport(summaries []bench.ScenarioSummary) (string, error) {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", errors.Wrap(err, "creating output directory")
	}

	path := filepath.Join(w.Dir, "scenarios_report.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "creating summary report")
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if err := cw.Write(SummaryHeader); err != nil {
		return "", err
	}
	for _, s := range summaries {
		row := []string{
			s.Scenario,
			strconv.Itoa(s.Clients),
			strconv.FormatFloat(s.DurationS, 'f', 3, 64),
			strconv.Itoa(s.Requests),
			strconv.Itoa(s.Success),
			strconv.Itoa(s.Errors),
			strconv.FormatFloat(s.RPS, 'f', 2, 64),
			s.LatAvgMs.Cell(),
			s.LatP50Ms.Cell(),
			s.LatP90Ms.Cell(),
			s.LatP95Ms.Cell(),
			s.LatP99Ms.Cell(),
			s.TookAvgMs.Cell(),
			s.TookP95Ms.Cell(),
		}
		if err := cw.Write(row); err != nil {
			return "", err
		}
	}
	cw.Flush()
	return path, cw.Error()
}
