package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"searchbench/internal/report"
	"searchbench/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded sweeps, or show one run's summary table",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := loadSettings()

		store, err := storage.Open(s.OutDir)
		if err != nil {
			log.WithError(err).Fatal("opening history store")
		}
		defer store.Close()

		if len(args) == 1 {
			rec, err := store.Get(args[0])
			if err != nil {
				log.WithError(err).Fatal("looking up run")
			}
			fmt.Printf("Run %s  (%s)  index=%s  seed=%d\n\n",
				rec.ID, rec.Timestamp.Format(time.RFC3339), rec.Config.Index, rec.Config.Seed)
			report.RenderTable(os.Stdout, rec.Summaries)
			return
		}

		records, err := store.List()
		if err != nil {
			log.WithError(err).Fatal("listing runs")
		}
		if len(records) == 0 {
			fmt.Println("No recorded runs.")
			return
		}
		for _, rec := range records {
			fmt.Printf("%s  %s  index=%s  scenarios=%d\n",
				rec.Timestamp.Format(time.RFC3339), rec.ID, rec.Config.Index, len(rec.Summaries))
		}
	},
}
