// Package logging configures structured logging for the metrics agent.
//
// It is a thin layer over log/slog: New builds a *slog.Logger from the
// agent's logging configuration (level, format, source annotation) and
// installs it as the process default, so components can pick up their
// own child logger with
//
//	logger := slog.Default().With("component", "sysmetrics")
//
// without threading a logger through every constructor.
package logging
