package bench

import (
	"context"
	"math/rand"
	"time"

	"searchbench/internal/catalog"
	"searchbench/internal/search"
	"searchbench/internal/stats"
)

// worker is one simulated client. It owns its result buffer and its random
// source, so the hot loop touches no shared mutable state; buffers are
// merged by the runner after all workers have joined.
type worker struct {
	scenario  string
	templates []catalog.Template
	client    search.Client
	deadline  time.Time
	rng       *rand.Rand
	tracker   *stats.Tracker
	results   []Result
}

// newWorker derives the worker's seed as base + index, keeping template
// selection reproducible per worker without a shared locked source.
func newWorker(scenario string, templates []catalog.Template, client search.Client,
	deadline time.Time, seed int64, index int, tracker *stats.Tracker) *worker {
	return &worker{
		scenario:  scenario,
		templates: templates,
		client:    client,
		deadline:  deadline,
		rng:       rand.New(rand.NewSource(seed + int64(index))),
		tracker:   tracker,
	}
}

// run loops until the deadline: pick a random template, time the single
// attempt, classify, record. A request already in flight when the deadline
// passes is allowed to finish; the overrun is bounded by the client's
// request timeout.
func (w *worker) run(ctx context.Context) {
	for time.Now().Before(w.deadline) {
		tpl := w.templates[w.rng.Intn(len(w.templates))]

		start := time.Now()
		out := w.client.Execute(ctx, tpl)
		latency := time.Since(start)

		res := Result{
			Scenario:  w.scenario,
			Query:     tpl.Name,
			Timestamp: start,
			Latency:   latency,
			Status:    StatusSuccess,
		}
		if out.Err != nil {
			res.Status = out.Err.Error()
		} else {
			res.TookMs = out.TookMs
			res.TotalHits = out.TotalHits
		}

		w.results = append(w.results, res)
		w.tracker.Add(res.Success(), latency)
	}
}
