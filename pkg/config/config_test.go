package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("Write config: %v", err)
	}
	return path
}

// TestLoadConfig_Defaults tests that an empty file yields the defaults.
func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfigFile(t, ""))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Collection.Schedule != DefaultCollectionSchedule {
		t.Errorf("Expected default schedule, got %q", cfg.Collection.Schedule)
	}
	if !cfg.Spool.Enabled || cfg.Spool.Path != DefaultSpoolPath {
		t.Errorf("Unexpected spool defaults: %+v", cfg.Spool)
	}
	if cfg.Spool.Retention != DefaultSpoolRetention {
		t.Errorf("Expected default retention, got %v", cfg.Spool.Retention)
	}
	if cfg.Telemetry.Logging.Level != "info" || cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("Unexpected logging defaults: %+v", cfg.Telemetry.Logging)
	}
	if !cfg.Telemetry.Metrics.Enabled || cfg.Telemetry.Metrics.ListenAddress != DefaultMetricsListenAddress {
		t.Errorf("Unexpected metrics defaults: %+v", cfg.Telemetry.Metrics)
	}
}

// TestLoadConfig_Values tests explicit values survive loading.
func TestLoadConfig_Values(t *testing.T) {
	cfg, err := LoadConfig(writeConfigFile(t, `
collection:
  schedule: "@every 30s"
  disk_path: /models
spool:
  enabled: true
  path: /var/lib/mms/spool.db
  retention: 48h
telemetry:
  logging:
    level: debug
    format: text
  metrics:
    enabled: true
    listen_address: 0.0.0.0:9901
`))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Collection.Schedule != "@every 30s" || cfg.Collection.DiskPath != "/models" {
		t.Errorf("Unexpected collection config: %+v", cfg.Collection)
	}
	if cfg.Spool.Retention != 48*time.Hour {
		t.Errorf("Expected 48h retention, got %v", cfg.Spool.Retention)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("Expected debug level, got %q", cfg.Telemetry.Logging.Level)
	}
}

// TestLoadConfig_DisabledSectionsSurvive tests that explicit
// enabled:false is not clobbered by defaulting.
func TestLoadConfig_DisabledSectionsSurvive(t *testing.T) {
	cfg, err := LoadConfig(writeConfigFile(t, `
spool:
  enabled: false
  path: /tmp/spool.db
telemetry:
  metrics:
    enabled: false
    listen_address: 127.0.0.1:9901
`))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Spool.Enabled {
		t.Error("Expected spool to stay disabled")
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("Expected metrics endpoint to stay disabled")
	}
}

// TestValidate tests rejection of contradictory configurations.
func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "bad collection schedule",
			mutate: func(c *Config) { c.Collection.Schedule = "whenever" },
		},
		{
			name:   "spool enabled without path",
			mutate: func(c *Config) { c.Spool.Path = "" },
		},
		{
			name:   "negative retention",
			mutate: func(c *Config) { c.Spool.Retention = -time.Hour },
		},
		{
			name:   "bad log level",
			mutate: func(c *Config) { c.Telemetry.Logging.Level = "loud" },
		},
		{
			name:   "bad log format",
			mutate: func(c *Config) { c.Telemetry.Logging.Format = "xml" },
		},
		{
			name:   "bad listen address",
			mutate: func(c *Config) { c.Telemetry.Metrics.ListenAddress = "no-port" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("Expected a validation error")
			}
		})
	}
}

// TestLoadConfigWithEnvOverrides tests MMS_* precedence over the file.
func TestLoadConfigWithEnvOverrides(t *testing.T) {
	t.Setenv("MMS_COLLECTION_SCHEDULE", "@every 5s")
	t.Setenv("MMS_SPOOL_ENABLED", "false")
	t.Setenv("MMS_LOG_LEVEL", "warn")

	cfg, err := LoadConfigWithEnvOverrides(writeConfigFile(t, `
collection:
  schedule: "@every 30s"
spool:
  enabled: true
`))
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides: %v", err)
	}

	if cfg.Collection.Schedule != "@every 5s" {
		t.Errorf("Expected env schedule, got %q", cfg.Collection.Schedule)
	}
	if cfg.Spool.Enabled {
		t.Error("Expected env override to disable spool")
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("Expected warn level, got %q", cfg.Telemetry.Logging.Level)
	}
}

// TestLoadConfig_MissingFile tests the error path.
func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Expected an error for a missing file")
	}
}
