package sysmetrics

import (
	"context"
	"errors"
	"testing"

	"github.com/odhalyxz/multi-model-server/pkg/metrics"
)

type fixedSampler struct {
	sample Sample
	err    error
}

func (f fixedSampler) Sample(context.Context) (Sample, error) {
	return f.sample, f.err
}

// TestCollector_Collect tests sample-to-metric rendering.
func TestCollector_Collect(t *testing.T) {
	collector := NewCollector(fixedSampler{sample: Sample{
		CPUPercent:           12.5,
		MemoryUsedBytes:      512 << 20,
		MemoryAvailableBytes: 1536 << 20,
		MemoryPercent:        25,
		DiskUsedBytes:        10 << 30,
		DiskAvailableBytes:   90 << 30,
		DiskPercent:          10,
	}})

	ms, err := collector.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	want := []struct {
		name  string
		value float64
		unit  string
	}{
		{"CPUUtilization", 12.5, "Percent"},
		{"MemoryUsed", 512, "Megabytes"},
		{"MemoryAvailable", 1536, "Megabytes"},
		{"MemoryUtilization", 25, "Percent"},
		{"DiskUsed", 10, "Gigabytes"},
		{"DiskAvailable", 90, "Gigabytes"},
		{"DiskUtilization", 10, "Percent"},
	}

	if len(ms) != len(want) {
		t.Fatalf("Expected %d metrics, got %d", len(want), len(ms))
	}
	for i, w := range want {
		m := ms[i]
		if m.Name != w.name || m.Unit != w.unit {
			t.Errorf("Position %d: expected %s/%s, got %s/%s", i, w.name, w.unit, m.Name, m.Unit)
		}
		if v, ok := m.Number(); !ok || v != w.value {
			t.Errorf("%s: expected %v, got %v", w.name, w.value, m.Value)
		}
		if m.RequestID != "" {
			t.Errorf("%s: host metrics carry no request id, got %q", w.name, m.RequestID)
		}
	}
}

// TestCollector_HostDimensions tests Level:Host and instance tagging.
func TestCollector_HostDimensions(t *testing.T) {
	collector := NewCollector(fixedSampler{})

	ms, err := collector.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	for _, m := range ms {
		var level, instance string
		for _, d := range m.Dimensions {
			switch d.Name {
			case metrics.DimensionLevel:
				level = d.Value
			case DimensionInstanceID:
				instance = d.Value
			}
		}
		if level != metrics.LevelHost {
			t.Errorf("%s: expected Level:Host, got %q", m.Name, level)
		}
		if instance != collector.InstanceID() {
			t.Errorf("%s: expected instance id %q, got %q", m.Name, collector.InstanceID(), instance)
		}
	}
}

// TestCollector_SampleError tests that sampler failures surface.
func TestCollector_SampleError(t *testing.T) {
	sampleErr := errors.New("no procfs")
	collector := NewCollector(fixedSampler{err: sampleErr})

	if _, err := collector.Collect(context.Background()); !errors.Is(err, sampleErr) {
		t.Fatalf("Expected sampler error, got %v", err)
	}
}

// TestScheduler_InvalidSchedule tests schedule validation up front.
func TestScheduler_InvalidSchedule(t *testing.T) {
	s := NewScheduler(NewCollector(fixedSampler{}), "not-a-schedule")
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("Expected an error for a bad cron expression")
	}
}

// TestScheduler_RestartKeepsSingleEntry tests that a Stop/Start cycle
// does not stack a second cron entry (which would double every round).
func TestScheduler_RestartKeepsSingleEntry(t *testing.T) {
	ctx := context.Background()
	s := NewScheduler(NewCollector(fixedSampler{}), "@every 1h")

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	defer s.Stop()

	if got := len(s.cron.Entries()); got != 1 {
		t.Errorf("Expected 1 scheduled entry after restart, got %d", got)
	}
}

// TestScheduler_ImmediateCollection tests that Start pushes one round
// to the sinks straight away.
func TestScheduler_ImmediateCollection(t *testing.T) {
	var got []*metrics.Metric
	sink := func(_ context.Context, ms []*metrics.Metric) { got = ms }

	s := NewScheduler(NewCollector(fixedSampler{}), "@every 1h", sink)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	if len(got) == 0 {
		t.Fatal("Expected an immediate collection round")
	}
}
