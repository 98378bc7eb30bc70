package metrics

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// LogPrefix marks metric lines in worker output so the frontend can
// pick them out of interleaved log text.
const LogPrefix = "[METRICS]"

// LogEmitter writes accumulated metrics as one log line per metric, in
// the form
//
//	[METRICS]Name.Unit:Value|#dim1,dim2|#hostname:HOST,TIMESTAMP,REQUESTID
//
// with the trailing request id omitted for metrics that have none.
// Lines are written in the Store's insertion order.
type LogEmitter struct {
	w        io.Writer
	hostname string
	now      func() time.Time
}

// LogEmitterOption customises a LogEmitter.
type LogEmitterOption func(*LogEmitter)

// WithHostname overrides the hostname stamped on every line.
func WithHostname(hostname string) LogEmitterOption {
	return func(e *LogEmitter) { e.hostname = hostname }
}

// WithClock overrides the clock used for line timestamps.
func WithClock(now func() time.Time) LogEmitterOption {
	return func(e *LogEmitter) { e.now = now }
}

// NewLogEmitter returns an emitter writing to w. The hostname defaults
// to the machine's and timestamps default to the wall clock.
func NewLogEmitter(w io.Writer, opts ...LogEmitterOption) *LogEmitter {
	e := &LogEmitter{w: w, now: time.Now}
	if host, err := os.Hostname(); err == nil {
		e.hostname = host
	} else {
		e.hostname = "unknown"
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit writes every metric accumulated in the store.
func (e *LogEmitter) Emit(store *Store) error {
	return e.EmitMetrics(store.Metrics())
}

// EmitMetrics writes the given metrics in order.
func (e *LogEmitter) EmitMetrics(metrics []*Metric) error {
	for _, m := range metrics {
		if _, err := io.WriteString(e.w, e.Line(m)+"\n"); err != nil {
			return fmt.Errorf("emit metric %q: %w", m.Name, err)
		}
	}
	return nil
}

// Line renders a single metric in the emission format.
func (e *LogEmitter) Line(m *Metric) string {
	dims := make([]string, len(m.Dimensions))
	for i, d := range m.Dimensions {
		dims[i] = d.String()
	}

	line := fmt.Sprintf("%s%s.%s:%v|#%s|#hostname:%s,%d",
		LogPrefix, m.Name, m.Unit, m.Value,
		strings.Join(dims, ","), e.hostname, e.now().Unix())
	if m.RequestID != "" {
		line += "," + m.RequestID
	}
	return line
}
