package promexport

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/odhalyxz/multi-model-server/pkg/metrics"
)

// Config controls the namespace and subsystem of published series.
type Config struct {
	// Namespace is the Prometheus namespace. Default: "mms".
	Namespace string

	// Subsystem is the Prometheus subsystem. Default: "worker".
	Subsystem string
}

// Publisher republishes Store contents as Prometheus series.
type Publisher struct {
	counters *prometheus.CounterVec
	values   *prometheus.GaugeVec
	errors   *prometheus.CounterVec
}

var labelNames = []string{"name", "unit", "model_name", "level"}

// NewPublisher creates a Publisher and registers its metric families
// with the given registry. If registry is nil the default Prometheus
// registerer is used.
func NewPublisher(cfg Config, registry *prometheus.Registry) (*Publisher, error) {
	if cfg.Namespace == "" {
		cfg.Namespace = "mms"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "worker"
	}

	p := &Publisher{
		counters: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "metric_total",
				Help:      "Accumulated counter-method metrics across batches",
			},
			labelNames,
		),
		values: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "metric_value",
				Help:      "Latest value of non-counter metrics",
			},
			labelNames,
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "metric_errors_total",
				Help:      "Error records seen per error metric name",
			},
			labelNames,
		),
	}

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	if registry != nil {
		registerer = registry
	}
	for _, c := range []prometheus.Collector{p.counters, p.values, p.errors} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Publish walks a finished per-batch store and folds each metric into
// the matching family. Stores are publish-once: republishing the same
// store double-counts its counters.
func (p *Publisher) Publish(store *metrics.Store) {
	p.PublishMetrics(store.Metrics())
}

// PublishMetrics folds a plain metric slice, for callers that build
// metrics without a Store (e.g. host-level collection).
func (p *Publisher) PublishMetrics(ms []*metrics.Metric) {
	for _, m := range ms {
		labels := labelsFor(m)

		value, numeric := m.Number()
		if !numeric {
			p.errors.With(labels).Inc()
			continue
		}
		if m.Method == metrics.MethodCounter {
			p.counters.With(labels).Add(value)
			continue
		}
		p.values.With(labels).Set(value)
	}
}

func labelsFor(m *metrics.Metric) prometheus.Labels {
	labels := prometheus.Labels{
		"name":       m.Name,
		"unit":       m.Unit,
		"model_name": "",
		"level":      "",
	}
	for _, d := range m.Dimensions {
		switch d.Name {
		case metrics.DimensionModelName:
			labels["model_name"] = d.Value
		case metrics.DimensionLevel:
			labels["level"] = d.Value
		}
	}
	return labels
}
