package sysmetrics

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/odhalyxz/multi-model-server/pkg/metrics"
)

// DimensionInstanceID tags host metrics with the agent instance that
// sampled them.
const DimensionInstanceID = "InstanceID"

// Sample is one reading of host utilization.
type Sample struct {
	CPUPercent float64

	MemoryUsedBytes      uint64
	MemoryAvailableBytes uint64
	MemoryPercent        float64

	DiskUsedBytes      uint64
	DiskAvailableBytes uint64
	DiskPercent        float64
}

// Sampler reads host utilization. The production implementation uses
// gopsutil; tests substitute a fixed sample.
type Sampler interface {
	Sample(ctx context.Context) (Sample, error)
}

// HostSampler reads utilization from the local machine via gopsutil.
type HostSampler struct {
	// DiskPath is the mount point measured for disk usage. Default "/".
	DiskPath string
}

// Sample reads CPU, memory and disk usage.
func (h HostSampler) Sample(ctx context.Context) (Sample, error) {
	var s Sample

	cpuPercents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return s, fmt.Errorf("sample cpu: %w", err)
	}
	if len(cpuPercents) > 0 {
		s.CPUPercent = cpuPercents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return s, fmt.Errorf("sample memory: %w", err)
	}
	s.MemoryUsedBytes = vm.Used
	s.MemoryAvailableBytes = vm.Available
	s.MemoryPercent = vm.UsedPercent

	path := h.DiskPath
	if path == "" {
		path = "/"
	}
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return s, fmt.Errorf("sample disk %q: %w", path, err)
	}
	s.DiskUsedBytes = usage.Used
	s.DiskAvailableBytes = usage.Free
	s.DiskPercent = usage.UsedPercent

	return s, nil
}

// Collector turns host samples into Level:Host metrics.
type Collector struct {
	sampler    Sampler
	instanceID string
}

// NewCollector creates a collector with a fresh instance id. A nil
// sampler defaults to reading the local host.
func NewCollector(sampler Sampler) *Collector {
	if sampler == nil {
		sampler = HostSampler{}
	}
	return &Collector{
		sampler:    sampler,
		instanceID: uuid.New().String(),
	}
}

// InstanceID returns the id stamped on every collected metric.
func (c *Collector) InstanceID() string {
	return c.instanceID
}

// Collect takes one sample and renders it as metrics, in a fixed order.
func (c *Collector) Collect(ctx context.Context) ([]*metrics.Metric, error) {
	sample, err := c.sampler.Sample(ctx)
	if err != nil {
		return nil, err
	}

	dims := []metrics.Dimension{
		{Name: metrics.DimensionLevel, Value: metrics.LevelHost},
		{Name: DimensionInstanceID, Value: c.instanceID},
	}

	host := func(name string, value float64, unit string) *metrics.Metric {
		return metrics.NewMetric(name, value, unit, dims, "", metrics.MethodNone)
	}

	return []*metrics.Metric{
		host("CPUUtilization", sample.CPUPercent, metrics.UnitPercent),
		host("MemoryUsed", toMegabytes(sample.MemoryUsedBytes), metrics.UnitMegabytes),
		host("MemoryAvailable", toMegabytes(sample.MemoryAvailableBytes), metrics.UnitMegabytes),
		host("MemoryUtilization", sample.MemoryPercent, metrics.UnitPercent),
		host("DiskUsed", toGigabytes(sample.DiskUsedBytes), metrics.UnitGigabytes),
		host("DiskAvailable", toGigabytes(sample.DiskAvailableBytes), metrics.UnitGigabytes),
		host("DiskUtilization", sample.DiskPercent, metrics.UnitPercent),
	}, nil
}

func toMegabytes(b uint64) float64 {
	return float64(b) / (1 << 20)
}

func toGigabytes(b uint64) float64 {
	return float64(b) / (1 << 30)
}
