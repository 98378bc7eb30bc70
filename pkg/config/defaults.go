package config

import "time"

// Default values for configuration fields.
const (
	DefaultCollectionSchedule = "@every 1m"
	DefaultDiskPath           = "/"

	DefaultSpoolEnabled       = true
	DefaultSpoolPath          = "data/metrics.db"
	DefaultSpoolRetention     = 24 * time.Hour
	DefaultSpoolPruneSchedule = "@every 1h"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsEnabled       = true
	DefaultMetricsListenAddress = "127.0.0.1:9901"
	DefaultMetricsNamespace     = "mms"
	DefaultMetricsSubsystem     = "agent"
)

// NewDefaultConfig returns a Config populated entirely from defaults.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills unset fields with default values. Booleans that
// default to true are only forced on a zero-value Config section, so an
// explicit `enabled: false` survives loading.
func ApplyDefaults(cfg *Config) {
	if cfg.Collection.Schedule == "" {
		cfg.Collection.Schedule = DefaultCollectionSchedule
	}
	if cfg.Collection.DiskPath == "" {
		cfg.Collection.DiskPath = DefaultDiskPath
	}

	if cfg.Spool == (SpoolConfig{}) {
		cfg.Spool.Enabled = DefaultSpoolEnabled
	}
	if cfg.Spool.Path == "" {
		cfg.Spool.Path = DefaultSpoolPath
	}
	if cfg.Spool.Retention == 0 {
		cfg.Spool.Retention = DefaultSpoolRetention
	}
	if cfg.Spool.PruneSchedule == "" {
		cfg.Spool.PruneSchedule = DefaultSpoolPruneSchedule
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}

	if cfg.Telemetry.Metrics == (MetricsConfig{}) {
		cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}
