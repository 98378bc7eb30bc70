package metrics

import (
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Unix(1700000000, 0)
}

// TestLogEmitter_Line tests the emitted line format.
func TestLogEmitter_Line(t *testing.T) {
	e := NewLogEmitter(&strings.Builder{}, WithHostname("worker-1"), WithClock(fixedClock))

	tests := []struct {
		name   string
		metric *Metric
		want   string
	}{
		{
			name: "model metric carries request id",
			metric: NewMetric("Requests", float64(2), "count", []Dimension{
				{Name: "ModelName", Value: "resnet"},
				{Name: "Level", Value: "Model"},
			}, "r1", MethodCounter),
			want: "[METRICS]Requests.Count:2|#ModelName:resnet,Level:Model|#hostname:worker-1,1700000000,r1",
		},
		{
			name: "error metric omits request id",
			metric: NewMetric("failure", "OOM", "", []Dimension{
				{Name: "Level", Value: "Error"},
			}, "", MethodNone),
			want: "[METRICS]failure.unit:OOM|#Level:Error|#hostname:worker-1,1700000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Line(tt.metric); got != tt.want {
				t.Errorf("Expected line\n  %s\ngot\n  %s", tt.want, got)
			}
		})
	}
}

// TestLogEmitter_Emit tests that a whole store is written in insertion
// order, one line per metric.
func TestLogEmitter_Emit(t *testing.T) {
	store := NewStore(ForBatch(map[int]string{0: "r1"}), "m")
	store.AddCounter("Requests", 1, 0)
	if err := store.AddTime("Latency", 12.5, 0, "ms"); err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	e := NewLogEmitter(&out, WithHostname("h"), WithClock(fixedClock))
	if err := e.Emit(store); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "[METRICS]Requests.Count:1|#") {
		t.Errorf("Unexpected first line: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "[METRICS]Latency.Milliseconds:12.5|#") {
		t.Errorf("Unexpected second line: %s", lines[1])
	}
}
