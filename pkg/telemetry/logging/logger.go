package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format is the output format for log records.
type Format string

const (
	// FormatJSON emits one JSON object per record.
	FormatJSON Format = "json"

	// FormatText emits logfmt-style key=value records.
	FormatText Format = "text"
)

// level is the active minimum level, shared by every logger built by
// New so a configuration reload can adjust it without rebuilding
// handlers.
var level slog.LevelVar

// Config controls how the agent logger is built.
type Config struct {
	// Level is the minimum level: "debug", "info", "warn" or "error".
	Level string

	// Format is "json" or "text".
	Format string

	// AddSource annotates records with file:line.
	AddSource bool

	// Writer receives log output. Defaults to os.Stderr.
	Writer io.Writer
}

// New builds a *slog.Logger from cfg and installs it as the process
// default.
func New(cfg Config) (*slog.Logger, error) {
	minLevel, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	level.Set(minLevel)

	writer := cfg.Writer
	if writer == nil {
		writer = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: &level, AddSource: cfg.AddSource}

	var handler slog.Handler
	switch Format(strings.ToLower(cfg.Format)) {
	case FormatJSON, "":
		handler = slog.NewJSONHandler(writer, opts)
	case FormatText:
		handler = slog.NewTextHandler(writer, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}

// SetLevel adjusts the minimum level of loggers built by New. It is
// how a configuration reload changes verbosity on a running agent.
func SetLevel(name string) error {
	minLevel, err := parseLevel(name)
	if err != nil {
		return err
	}
	level.Set(minLevel)
	return nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", level)
	}
}
