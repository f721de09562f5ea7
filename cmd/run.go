package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"searchbench/internal/banner"
	"searchbench/internal/bench"
	"searchbench/internal/catalog"
	"searchbench/internal/report"
	"searchbench/internal/search"
	"searchbench/internal/storage"
)

func runSweep() {
	fmt.Println(banner.GetString())

	s := loadSettings()
	log.WithFields(logrus.Fields{
		"url":      s.ElasticURL,
		"index":    s.Index,
		"queries":  s.QueryDir,
		"out":      s.OutDir,
		"duration": s.Duration,
		"timeout":  s.RequestTimeout,
		"warmup":   s.Warmup,
		"seed":     s.Seed,
	}).Info("starting sweep")

	templates, err := catalog.Load(s.QueryDir)
	if err != nil {
		log.WithError(err).Fatal("loading query catalog")
	}

	clients := s.Clients
	if len(clients) == 0 {
		clients = bench.DefaultClients
	}

	esClient := search.NewESClient(s.ElasticURL, s.Index, s.RequestTimeout)
	ctx := context.Background()
	if err := esClient.Ping(ctx); err != nil {
		log.WithError(err).Fatal("service endpoint unreachable")
	}

	runner := &bench.Runner{
		Client:    esClient,
		Templates: templates,
		Duration:  s.Duration,
		Warmup:    s.Warmup,
		Seed:      s.Seed,
		Log:       log,
		Progress:  os.Stdout,
	}

	orch := &bench.Orchestrator{
		Runner:    runner,
		Scenarios: bench.Sweep(clients),
		Sink:      report.Writer{Dir: s.OutDir},
		Log:       log,
	}

	summaries, err := orch.Run(ctx)
	if err != nil {
		log.WithError(err).Fatal("sweep failed")
	}

	report.RenderTable(os.Stdout, summaries)

	saveHistory(s, summaries)

	fmt.Printf("\nSummary saved -> %s/scenarios_report.csv\n", s.OutDir)
	fmt.Printf("Per-request logs -> %s/per_request_logs/\n", s.OutDir)
}

// saveHistory records the completed sweep; history is a convenience, so
// failures only warn.
func saveHistory(s settings, summaries []bench.ScenarioSummary) {
	store, err := storage.Open(s.OutDir)
	if err != nil {
		log.WithError(err).Warn("opening history store")
		return
	}
	defer store.Close()

	rec, err := store.Save(storage.RunRecord{
		Config: storage.RunConfig{
			ElasticURL:     s.ElasticURL,
			Index:          s.Index,
			QueryDir:       s.QueryDir,
			OutDir:         s.OutDir,
			RequestTimeout: s.RequestTimeout,
			Duration:       s.Duration,
			Warmup:         s.Warmup,
			Seed:           s.Seed,
		},
		Summaries: summaries,
	})
	if err != nil {
		log.WithError(err).Warn("saving run history")
		return
	}
	log.WithField("run_id", rec.ID).Info("run recorded")
}
