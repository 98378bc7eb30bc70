package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "mms-metricsd",
	Short: "Host metrics agent for the model server",
	Long: `mms-metricsd samples host utilization (CPU, memory, disk) on a
schedule and publishes it the way model workers publish their own
per-batch metrics:

  - metric lines on stdout for the frontend to scrape
  - a Prometheus /metrics endpoint
  - a local SQLite history for after-the-fact inspection`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "metricsd.yaml", "config file path")
}
