package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odhalyxz/multi-model-server/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load the configuration file, apply defaults and environment
overrides, and report whether the result is usable. Nothing is started.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
		if err != nil {
			return err
		}
		fmt.Printf("%s: OK\n", cfgFile)
		fmt.Printf("  collection schedule: %s\n", cfg.Collection.Schedule)
		fmt.Printf("  spool: enabled=%v path=%s retention=%s\n",
			cfg.Spool.Enabled, cfg.Spool.Path, cfg.Spool.Retention)
		fmt.Printf("  prometheus: enabled=%v listen=%s\n",
			cfg.Telemetry.Metrics.Enabled, cfg.Telemetry.Metrics.ListenAddress)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
