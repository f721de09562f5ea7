package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"searchbench/internal/dummy"
)

var dummyCmd = &cobra.Command{
	Use:   "dummy",
	Short: "Run a local stub search server",
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetInt("port")
		minMs, _ := cmd.Flags().GetInt("min-latency")
		maxMs, _ := cmd.Flags().GetInt("max-latency")
		failRate, _ := cmd.Flags().GetFloat64("fail-rate")

		log.WithField("port", port).Info("stub search server listening")
		err := dummy.Start(dummy.ServerConfig{
			Port:       port,
			MinLatency: time.Duration(minMs) * time.Millisecond,
			MaxLatency: time.Duration(maxMs) * time.Millisecond,
			FailRate:   failRate,
		})
		if err != nil {
			log.WithError(err).Fatal("stub server exited")
		}
	},
}

func init() {
	dummyCmd.Flags().IntP("port", "p", 9200, "Port to listen on")
	dummyCmd.Flags().Int("min-latency", 10, "Minimum response latency (ms)")
	dummyCmd.Flags().Int("max-latency", 50, "Maximum response latency (ms)")
	dummyCmd.Flags().Float64("fail-rate", 0, "Probability of an injected 500 response")
}
