package metrics

// AggregationMethod tells a Metric how repeated updates combine.
type AggregationMethod string

const (
	// MethodNone replaces the value on every update (last write wins).
	MethodNone AggregationMethod = ""

	// MethodCounter adds each update to the running value.
	MethodCounter AggregationMethod = "counter"
)

// Metric is a single accumulated measurement. Numeric metrics carry a
// float64 value; error metrics carry a short description string.
type Metric struct {
	// Name identifies the metric (e.g. "Requests", "InferenceLatency").
	Name string `json:"name"`

	// Value is float64 for numeric metrics and string for error records.
	Value any `json:"value"`

	// Unit is the spelled-out unit name (e.g. "Milliseconds").
	Unit string `json:"unit"`

	// Dimensions are the tags attached to the metric, in the order they
	// were supplied followed by the tags the Store injected.
	Dimensions []Dimension `json:"dimensions"`

	// RequestID identifies the request this metric belongs to. Empty
	// for error-level and host-level metrics.
	RequestID string `json:"request_id,omitempty"`

	// Method controls how Update combines repeated values.
	Method AggregationMethod `json:"method,omitempty"`
}

// NewMetric constructs a Metric, canonicalising the short unit code.
func NewMetric(name string, value any, unit string, dimensions []Dimension, requestID string, method AggregationMethod) *Metric {
	return &Metric{
		Name:       name,
		Value:      value,
		Unit:       CanonicalUnit(unit),
		Dimensions: dimensions,
		RequestID:  requestID,
		Method:     method,
	}
}

// Update folds a new observation into the metric. Counter metrics add;
// everything else keeps the latest value.
func (m *Metric) Update(value any) {
	if m.Method == MethodCounter {
		current, _ := m.Value.(float64)
		next, _ := value.(float64)
		m.Value = current + next
		return
	}
	m.Value = value
}

// Number returns the metric value as a float64. The second return is
// false for error metrics, whose value is a string.
func (m *Metric) Number() (float64, bool) {
	v, ok := m.Value.(float64)
	return v, ok
}
