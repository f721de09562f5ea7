package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"searchbench/internal/banner"
)

var (
	cfgFile string
	log     = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "searchbench",
	Short: "searchbench - concurrency-sweep load tester for search services",
	Long: `
searchbench drives a search index with a rising number of simulated
concurrent clients, each issuing randomly selected catalog queries for a
fixed duration, and reports per-request logs plus latency/throughput
summaries per concurrency level.`,
	Run: func(cmd *cobra.Command, args []string) {
		runSweep()
	},
}

func Execute() {
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		fmt.Println(banner.GetString())
		cmd.Usage()
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(dummyCmd)
	rootCmd.AddCommand(historyCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.searchbench.yaml)")

	rootCmd.PersistentFlags().StringP("url", "u", "http://localhost:9200", "Service endpoint URL")
	rootCmd.PersistentFlags().StringP("index", "i", "amazon-music-reviews", "Target index name")
	rootCmd.PersistentFlags().StringP("queries", "q", "queries", "Query catalog directory")
	rootCmd.PersistentFlags().StringP("out", "o", "scenarios_outputs", "Output directory")
	rootCmd.PersistentFlags().Float64("timeout", 180, "Per-request timeout in seconds")

	rootCmd.Flags().Float64P("duration", "d", 10, "Run duration per client in seconds")
	rootCmd.Flags().IntP("warmup", "w", 5, "Warmup request count")
	rootCmd.Flags().Int64("seed", 42, "Base random seed for template selection")
	rootCmd.Flags().IntSliceP("clients", "c", nil, "Client counts for the sweep (default 1,2,4,6,8,10,12,16,20,24)")

	viper.BindPFlag("elastic_url", rootCmd.PersistentFlags().Lookup("url"))
	viper.BindPFlag("index_name", rootCmd.PersistentFlags().Lookup("index"))
	viper.BindPFlag("query_dir", rootCmd.PersistentFlags().Lookup("queries"))
	viper.BindPFlag("out_dir", rootCmd.PersistentFlags().Lookup("out"))
	viper.BindPFlag("request_timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("duration_per_client", rootCmd.Flags().Lookup("duration"))
	viper.BindPFlag("warmup_requests", rootCmd.Flags().Lookup("warmup"))
	viper.BindPFlag("seed", rootCmd.Flags().Lookup("seed"))
	viper.BindPFlag("clients", rootCmd.Flags().Lookup("clients"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".searchbench")
		}
	}

	// The same environment surface the original deployment used.
	viper.BindEnv("elastic_url", "ELASTIC_URL")
	viper.BindEnv("index_name", "INDEX_NAME")
	viper.BindEnv("query_dir", "QUERY_DIR")
	viper.BindEnv("out_dir", "OUT_DIR")
	viper.BindEnv("request_timeout", "REQUEST_TIMEOUT")
	viper.BindEnv("duration_per_client", "DURATION_PER_CLIENT")
	viper.BindEnv("warmup_requests", "WARMUP_REQUESTS")
	viper.BindEnv("seed", "SEED")
	viper.AutomaticEnv()
	viper.ReadInConfig()
}

// settings is the resolved configuration for one invocation.
type settings struct {
	ElasticURL     string
	Index          string
	QueryDir       string
	OutDir         string
	RequestTimeout time.Duration
	Duration       time.Duration
	Warmup         int
	Seed           int64
	Clients        []int
}

func loadSettings() settings {
	s := settings{
		ElasticURL:     viper.GetString("elastic_url"),
		Index:          viper.GetString("index_name"),
		QueryDir:       viper.GetString("query_dir"),
		OutDir:         viper.GetString("out_dir"),
		RequestTimeout: time.Duration(viper.GetFloat64("request_timeout") * float64(time.Second)),
		Duration:       time.Duration(viper.GetFloat64("duration_per_client") * float64(time.Second)),
		Warmup:         viper.GetInt("warmup_requests"),
		Seed:           viper.GetInt64("seed"),
		Clients:        viper.GetIntSlice("clients"),
	}
	return s
}
