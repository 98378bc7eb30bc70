// Package sysmetrics samples host-level utilization (CPU, memory,
// disk) and renders the samples as model-server metrics tagged
// Level:Host.
//
// Host metrics belong to no request, so the collector builds Metric
// values directly instead of going through a per-batch Store; the
// Store's request tagging rules do not apply at host level. A
// cron-driven Scheduler runs collection on the configured schedule and
// pushes each round to the emitter, the Prometheus publisher and the
// spool.
package sysmetrics
