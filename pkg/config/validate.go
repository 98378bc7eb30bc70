package config

import (
	"errors"
	"fmt"
	"net"

	"github.com/robfig/cron/v3"
)

// ErrConfigInvalid is wrapped by every validation failure.
var ErrConfigInvalid = errors.New("invalid agent configuration")

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

var validLogFormats = map[string]bool{
	"json": true, "text": true,
}

// Validate checks a fully-defaulted Config for contradictions.
func Validate(cfg *Config) error {
	if _, err := cron.ParseStandard(cfg.Collection.Schedule); err != nil {
		return fmt.Errorf("%w: collection.schedule %q: %v", ErrConfigInvalid, cfg.Collection.Schedule, err)
	}
	if cfg.Collection.DiskPath == "" {
		return fmt.Errorf("%w: collection.disk_path cannot be empty", ErrConfigInvalid)
	}

	if cfg.Spool.Enabled {
		if cfg.Spool.Path == "" {
			return fmt.Errorf("%w: spool.path cannot be empty when the spool is enabled", ErrConfigInvalid)
		}
		if cfg.Spool.Retention <= 0 {
			return fmt.Errorf("%w: spool.retention must be positive", ErrConfigInvalid)
		}
		if _, err := cron.ParseStandard(cfg.Spool.PruneSchedule); err != nil {
			return fmt.Errorf("%w: spool.prune_schedule %q: %v", ErrConfigInvalid, cfg.Spool.PruneSchedule, err)
		}
	}

	if !validLogLevels[cfg.Telemetry.Logging.Level] {
		return fmt.Errorf("%w: telemetry.logging.level %q", ErrConfigInvalid, cfg.Telemetry.Logging.Level)
	}
	if !validLogFormats[cfg.Telemetry.Logging.Format] {
		return fmt.Errorf("%w: telemetry.logging.format %q", ErrConfigInvalid, cfg.Telemetry.Logging.Format)
	}

	if cfg.Telemetry.Metrics.Enabled {
		if _, _, err := net.SplitHostPort(cfg.Telemetry.Metrics.ListenAddress); err != nil {
			return fmt.Errorf("%w: telemetry.metrics.listen_address %q: %v", ErrConfigInvalid, cfg.Telemetry.Metrics.ListenAddress, err)
		}
	}
	return nil
}
