package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"searchbench/internal/catalog"
	"searchbench/internal/runonce"
	"searchbench/internal/search"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run every catalog query once and save the raw responses",
	Run: func(cmd *cobra.Command, args []string) {
		s := loadSettings()

		templates, err := catalog.Load(s.QueryDir)
		if err != nil {
			log.WithError(err).Fatal("loading query catalog")
		}

		client := search.NewESClient(s.ElasticURL, s.Index, s.RequestTimeout)
		if err := runonce.Run(context.Background(), client, templates, s.OutDir, log); err != nil {
			log.WithError(err).Fatal("query run failed")
		}

		log.WithField("out", s.OutDir+"/queries_outputs").Info("all queries executed")
	},
}
