package metrics

import (
	"fmt"
	"strings"
)

// keySeparator joins dimension strings inside a metricKey. The ASCII
// unit separator cannot appear in metric names, units or dimension
// text, so joined keys cannot collide across field boundaries.
const keySeparator = "\x1f"

// metricKey is the structural dedup signature of a metric: two add
// calls producing the same key address the same Metric.
type metricKey struct {
	name         string
	unit         string
	requestID    string
	hasRequestID bool
	dims         string
}

func newMetricKey(name, unit, requestID string, hasRequestID bool, dims []Dimension) metricKey {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = d.String()
	}
	return metricKey{
		name:         name,
		unit:         unit,
		requestID:    requestID,
		hasRequestID: hasRequestID,
		dims:         strings.Join(parts, keySeparator),
	}
}

// Store accumulates the metrics of one inference batch. Create one per
// batch, record metrics while handling it, then hand Metrics() to an
// emitter and discard the Store.
type Store struct {
	requestIDs RequestIDs
	modelName  string
	entries    []*Metric
	cache      map[metricKey]*Metric
}

// NewStore returns an empty Store for one batch of requests handled by
// the named model.
func NewStore(requestIDs RequestIDs, modelName string) *Store {
	return &Store{
		requestIDs: requestIDs,
		modelName:  modelName,
		cache:      make(map[metricKey]*Metric),
	}
}

// Metrics returns the accumulated metrics in first-seen order. The
// slice is shared with the Store; callers must not modify it.
func (s *Store) Metrics() []*Metric {
	return s.entries
}

// Len reports how many distinct metrics have been recorded.
func (s *Store) Len() int {
	return len(s.entries)
}

// addOrUpdate records one observation. Metrics with a request context
// are tagged with the model name and the model level; metrics without
// one are tagged as error level. A fresh dimension slice is always
// allocated so a caller-owned backing array is never written to.
func (s *Store) addOrUpdate(name string, value any, requestID string, hasRequestID bool, unit string, method AggregationMethod, dims []Dimension) {
	all := make([]Dimension, 0, len(dims)+2)
	all = append(all, dims...)
	if hasRequestID {
		all = append(all,
			Dimension{Name: DimensionModelName, Value: s.modelName},
			Dimension{Name: DimensionLevel, Value: LevelModel})
	} else {
		all = append(all, Dimension{Name: DimensionLevel, Value: LevelError})
	}

	key := newMetricKey(name, unit, requestID, hasRequestID, all)
	if existing, ok := s.cache[key]; ok {
		existing.Update(value)
		return
	}

	metric := NewMetric(name, value, unit, all, requestID, method)
	s.entries = append(s.entries, metric)
	s.cache[key] = metric
}

// AddCounter adds a counter metric, or increments it if the same
// counter was already recorded. idx is the request's batch position, or
// NoIndex when the metric describes the whole batch.
func (s *Store) AddCounter(name string, value float64, idx int, dims ...Dimension) {
	requestID, ok := s.requestIDs.resolve(idx)
	s.addOrUpdate(name, value, requestID, ok, UnitCount, MethodCounter, dims)
}

// AddTime adds a latency-style metric. An empty unit defaults to "ms";
// anything other than "ms" or "s" is rejected before any state changes.
func (s *Store) AddTime(name string, value float64, idx int, unit string, dims ...Dimension) error {
	if unit == "" {
		unit = UnitMilliseconds
	}
	if unit != UnitMilliseconds && unit != UnitSeconds {
		return fmt.Errorf("add time metric %q: %w", name, ErrInvalidTimeUnit)
	}
	requestID, ok := s.requestIDs.resolve(idx)
	s.addOrUpdate(name, value, requestID, ok, unit, MethodNone, dims)
	return nil
}

// AddSize adds a size metric. An empty unit defaults to "MB"; anything
// other than "MB", "kB" or "GB" is rejected before any state changes.
func (s *Store) AddSize(name string, value float64, idx int, unit string, dims ...Dimension) error {
	if unit == "" {
		unit = UnitMegabytes
	}
	if unit != UnitMegabytes && unit != UnitKilobytes && unit != UnitGigabytes {
		return fmt.Errorf("add size metric %q: %w", name, ErrInvalidSizeUnit)
	}
	requestID, ok := s.requestIDs.resolve(idx)
	s.addOrUpdate(name, value, requestID, ok, unit, MethodNone, dims)
	return nil
}

// AddPercent adds a percentage metric.
func (s *Store) AddPercent(name string, value float64, idx int, dims ...Dimension) {
	requestID, ok := s.requestIDs.resolve(idx)
	s.addOrUpdate(name, value, requestID, ok, UnitPercent, MethodNone, dims)
}

// AddError records an error event. Error metrics carry no request id
// and are tagged with the error level; value is a short description of
// what went wrong.
func (s *Store) AddError(name, value string, dims ...Dimension) {
	s.addOrUpdate(name, value, "", false, "", MethodNone, dims)
}

// AddMetric adds a metric with a caller-chosen unit, for custom metrics
// emitted by model handler code.
func (s *Store) AddMetric(name string, value float64, idx int, unit string, dims ...Dimension) {
	requestID, ok := s.requestIDs.resolve(idx)
	s.addOrUpdate(name, value, requestID, ok, unit, MethodNone, dims)
}
