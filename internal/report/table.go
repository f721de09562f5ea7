package report

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"searchbench/internal/bench"
)

// RenderTable prints the cross-scenario summary as a console table.
func RenderTable(w io.Writer, summaries []bench.ScenarioSummary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{
		"Scenario", "Clients", "Requests", "Errors", "RPS",
		"Avg (ms)", "p50 (ms)", "p95 (ms)", "p99 (ms)",
	})
	for _, s := range summaries {
		table.Append([]string{
			s.Scenario,
			strconv.Itoa(s.Clients),
			strconv.Itoa(s.Requests),
			strconv.Itoa(s.Errors),
			strconv.FormatFloat(s.RPS, 'f', 2, 64),
			cellOrDash(s.LatAvgMs),
			cellOrDash(s.LatP50Ms),
			cellOrDash(s.LatP95Ms),
			cellOrDash(s.LatP99Ms),
		})
	}
	table.Render()
}

func cellOrDash(m bench.Metric) string {
	if !m.Valid {
		return "-"
	}
	return m.Cell()
}
