package config

import "time"

// Config is the root configuration for the metrics agent.
type Config struct {
	// Collection controls host metric sampling.
	Collection CollectionConfig `yaml:"collection"`

	// Spool controls the local SQLite history of emitted metrics.
	Spool SpoolConfig `yaml:"spool"`

	// Telemetry controls the agent's own logging and Prometheus
	// exposure.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// CollectionConfig controls host metric sampling.
type CollectionConfig struct {
	// Schedule is a cron expression (or @every form) for collection
	// rounds.
	// Default: "@every 1m"
	Schedule string `yaml:"schedule"`

	// DiskPath is the mount point measured for disk metrics.
	// Default: "/"
	DiskPath string `yaml:"disk_path"`
}

// SpoolConfig controls the durable metric history.
type SpoolConfig struct {
	// Enabled turns the spool on.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file.
	// Default: "data/metrics.db"
	Path string `yaml:"path"`

	// Retention is how long spooled rows are kept.
	// Default: 24h
	Retention time.Duration `yaml:"retention"`

	// PruneSchedule is a cron expression for retention pruning.
	// Default: "@every 1h"
	PruneSchedule string `yaml:"prune_schedule"`
}

// TelemetryConfig controls the agent's own observability.
type TelemetryConfig struct {
	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is "debug", "info", "warn" or "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource annotates records with file:line.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Enabled turns the /metrics endpoint on.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the host:port the endpoint binds to.
	// Default: "127.0.0.1:9901"
	ListenAddress string `yaml:"listen_address"`

	// Namespace is the Prometheus namespace for published series.
	// Default: "mms"
	Namespace string `yaml:"namespace"`

	// Subsystem is the Prometheus subsystem for published series.
	// Default: "agent"
	Subsystem string `yaml:"subsystem"`
}
