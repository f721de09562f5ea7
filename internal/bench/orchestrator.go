package bench

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ReportSink persists scenario output. Logs are written after each scenario
// completes; the summary report after the whole sweep.
type ReportSink interface {
	WriteScenarioLog(scenario string, results []Result) (string, error)
	WriteSummaryReport(summaries []ScenarioSummary) (string, error)
}

// Orchestrator runs an ordered scenario list strictly sequentially: one
// scenario's workers all terminate before the next begins, so each
// concurrency level is measured in isolation.
type Orchestrator struct {
	Runner    *Runner
	Scenarios []ScenarioSpec
	Sink      ReportSink
	Log       logrus.FieldLogger
}

// Run executes the sweep and returns every scenario summary in input order.
func (o *Orchestrator) Run(ctx context.Context) ([]ScenarioSummary, error) {
	if len(o.Scenarios) == 0 {
		return nil, errors.New("no scenarios configured")
	}
	if len(o.Runner.Templates) == 0 {
		return nil, errors.New("no query templates loaded")
	}
	for _, spec := range o.Scenarios {
		if spec.Clients <= 0 {
			return nil, errors.Errorf("scenario %s: clients must be positive, got %d", spec.Name, spec.Clients)
		}
	}

	summaries := make([]ScenarioSummary, 0, len(o.Scenarios))
	for _, spec := range o.Scenarios {
		o.Log.WithFields(logrus.Fields{
			"scenario": spec.Name,
			"clients":  spec.Clients,
			"selector": "random",
		}).Info("running scenario")

		results, summary := o.Runner.Run(ctx, spec)

		logPath, err := o.Sink.WriteScenarioLog(spec.Name, results)
		if err != nil {
			return nil, errors.Wrapf(err, "persisting per-request log for %s", spec.Name)
		}

		o.Log.WithFields(logrus.Fields{
			"scenario":   spec.Name,
			"duration_s": summary.DurationS,
			"requests":   summary.Requests,
			"rps":        summary.RPS,
			"avg_lat_ms": summary.LatAvgMs.Cell(),
			"errors":     summary.Errors,
			"log":        logPath,
		}).Info("scenario complete")

		summaries = append(summaries, summary)
	}

	reportPath, err := o.Sink.WriteSummaryReport(summaries)
	if err != nil {
		return nil, errors.Wrap(err, "writing summary report")
	}
	o.Log.WithField("report", reportPath).Info("sweep complete")

	return summaries, nil
}
