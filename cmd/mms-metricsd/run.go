package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/odhalyxz/multi-model-server/pkg/config"
	"github.com/odhalyxz/multi-model-server/pkg/metrics"
	"github.com/odhalyxz/multi-model-server/pkg/spool"
	"github.com/odhalyxz/multi-model-server/pkg/sysmetrics"
	"github.com/odhalyxz/multi-model-server/pkg/telemetry/logging"
	"github.com/odhalyxz/multi-model-server/pkg/telemetry/promexport"
)

var runFlags struct {
	logLevel      string
	listenAddress string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the metrics agent",
	Long: `Start the metrics agent with the specified configuration.

The agent samples host utilization on the configured schedule and fans
each round out to stdout metric lines, the Prometheus endpoint and the
local spool.

Examples:
  # Start with default config
  mms-metricsd run

  # Start with custom config
  mms-metricsd run --config /etc/mms/metricsd.yaml

  # Override the Prometheus listen address
  mms-metricsd run --listen 0.0.0.0:9901`,
	RunE: runAgent,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override Prometheus listen address")
}

func runAgent(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return err
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if runFlags.listenAddress != "" {
		cfg.Telemetry.Metrics.ListenAddress = runFlags.listenAddress
	}

	logger, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Watch the config file so verbosity can be adjusted on a running
	// agent. Schedule, spool and listen-address changes need a restart.
	watcher, err := config.NewWatcher(cfgFile, func(reloaded *config.Config) {
		applyReloadedConfig(logger, reloaded)
	})
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	emitter := metrics.NewLogEmitter(os.Stdout)
	sinks := []sysmetrics.Sink{
		func(_ context.Context, ms []*metrics.Metric) {
			if err := emitter.EmitMetrics(ms); err != nil {
				logger.Error("metric emission failed", "error", err)
			}
		},
	}

	var httpServer *http.Server
	if cfg.Telemetry.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		publisher, err := promexport.NewPublisher(promexport.Config{
			Namespace: cfg.Telemetry.Metrics.Namespace,
			Subsystem: cfg.Telemetry.Metrics.Subsystem,
		}, registry)
		if err != nil {
			return fmt.Errorf("register prometheus metrics: %w", err)
		}
		sinks = append(sinks, func(_ context.Context, ms []*metrics.Metric) {
			publisher.PublishMetrics(ms)
		})

		mux := http.NewServeMux()
		mux.Handle("/metrics", promexport.Handler(registry))
		httpServer = &http.Server{Addr: cfg.Telemetry.Metrics.ListenAddress, Handler: mux}
		go func() {
			logger.Info("prometheus endpoint listening", "address", httpServer.Addr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("prometheus endpoint failed", "error", err)
			}
		}()
	}

	if cfg.Spool.Enabled {
		pruneCron := cron.New()
		history, err := spool.Open(cfg.Spool.Path)
		if err != nil {
			return err
		}
		defer history.Close()

		sinks = append(sinks, func(ctx context.Context, ms []*metrics.Metric) {
			if err := history.Append(ctx, ms); err != nil {
				logger.Error("spool append failed", "error", err)
			}
		})

		retention := cfg.Spool.Retention
		if _, err := pruneCron.AddFunc(cfg.Spool.PruneSchedule, func() {
			pruned, err := history.Prune(ctx, time.Now().Add(-retention))
			if err != nil {
				logger.Error("spool prune failed", "error", err)
				return
			}
			if pruned > 0 {
				logger.Debug("spool pruned", "rows", pruned)
			}
		}); err != nil {
			return fmt.Errorf("schedule spool pruning: %w", err)
		}
		pruneCron.Start()
		defer pruneCron.Stop()
	}

	collector := sysmetrics.NewCollector(sysmetrics.HostSampler{DiskPath: cfg.Collection.DiskPath})
	scheduler := sysmetrics.NewScheduler(collector, cfg.Collection.Schedule, sinks...)
	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	defer scheduler.Stop()

	logger.Info("metrics agent started",
		"instance_id", collector.InstanceID(),
		"schedule", cfg.Collection.Schedule)

	<-ctx.Done()
	logger.Info("shutting down")

	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("prometheus endpoint shutdown failed", "error", err)
		}
	}
	return nil
}

// applyReloadedConfig applies the settings that can change on a
// running agent. The --log-level flag, when given, stays in force.
func applyReloadedConfig(logger *slog.Logger, cfg *config.Config) {
	level := cfg.Telemetry.Logging.Level
	if runFlags.logLevel != "" {
		level = runFlags.logLevel
	}
	if err := logging.SetLevel(level); err != nil {
		logger.Error("reloaded log level rejected", "error", err)
		return
	}
	logger.Info("configuration reloaded", "log_level", level)
}
