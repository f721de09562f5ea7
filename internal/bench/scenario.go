package bench

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"searchbench/internal/catalog"
	"searchbench/internal/search"
	"searchbench/internal/stats"
)

// Runner executes load-test scenarios against one service client. The
// client and template set are shared across scenarios and must outlive them.
type Runner struct {
	Client    search.Client
	Templates []catalog.Template

	// Duration is the run window each client gets.
	Duration time.Duration
	// Warmup is the number of sequential discarded requests before
	// measurement, capped at the template count.
	Warmup int
	// Seed is the base seed; worker i uses Seed+i.
	Seed int64

	Log logrus.FieldLogger
	// Progress, when set, receives an in-place updating status line
	// during the run window.
	Progress io.Writer
}

// Run executes one scenario: cache reset (best effort), warmup, exactly
// spec.Clients workers sharing one deadline, join, merge, summarize. The
// returned results are the exact union of all worker buffers.
func (r *Runner) Run(ctx context.Context, spec ScenarioSpec) ([]Result, ScenarioSummary) {
	if err := r.Client.ClearCache(ctx); err != nil {
		r.Log.WithError(err).Warn("cache clear failed, continuing")
	}

	r.warmup(ctx)

	tracker := stats.NewTracker()
	start := time.Now()
	deadline := start.Add(r.Duration)

	stopProgress := r.startProgress(spec, start, tracker)

	var wg sync.WaitGroup
	workers := make([]*worker, spec.Clients)
	for i := 0; i < spec.Clients; i++ {
		w := newWorker(spec.Name, r.Templates, r.Client, deadline, r.Seed, i, tracker)
		workers[i] = w
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.run(ctx)
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	stopProgress()

	var results []Result
	for _, w := range workers {
		results = append(results, w.results...)
	}

	return results, Summarize(spec, results, elapsed)
}

func (r *Runner) warmup(ctx context.Context) {
	n := r.Warmup
	if n > len(r.Templates) {
		n = len(r.Templates)
	}
	for i := 0; i < n; i++ {
		if out := r.Client.Execute(ctx, r.Templates[i]); out.Err != nil {
			r.Log.WithError(out.Err).WithField("query", r.Templates[i].Name).
				Debug("warmup request failed, ignoring")
		}
	}
}

// startProgress redraws a single status line on a ticker until stopped.
func (r *Runner) startProgress(spec ScenarioSpec, start time.Time, tracker *stats.Tracker) func() {
	if r.Progress == nil {
		return func() {}
	}

	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				fmt.Fprint(r.Progress, "\r\033[K")
				return
			case <-ticker.C:
				elapsed := time.Since(start)
				pct := elapsed.Seconds() / r.Duration.Seconds()
				if pct > 1.0 {
					pct = 1.0
				}
				requests, success, fail := tracker.Snapshot()
				rps := 0.0
				if elapsed.Seconds() > 0 {
					rps = float64(requests) / elapsed.Seconds()
				}
				fmt.Fprintf(r.Progress, "\r%s %s %3.0f%% | RPS: %.1f | OK: %d | Err: %d | p50: %.1fms",
					spec.Name, progressBar(pct, 20), pct*100,
					rps, success, fail, tracker.P50Ms(),
				)
			}
		}
	}()

	return func() {
		close(done)
		<-finished
	}
}

func progressBar(pct float64, width int) string {
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("-", width-filled) + "]"
}
