package sysmetrics

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/odhalyxz/multi-model-server/pkg/metrics"
)

// Sink receives each collected round of host metrics.
type Sink func(ctx context.Context, ms []*metrics.Metric)

// Scheduler runs host metric collection on a cron schedule and fans
// each round out to the registered sinks.
type Scheduler struct {
	collector *Collector
	schedule  string
	sinks     []Sink
	cron      *cron.Cron
	logger    *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scheduler. schedule accepts standard cron
// syntax and the @every form, e.g. "@every 1m".
func NewScheduler(collector *Collector, schedule string, sinks ...Sink) *Scheduler {
	return &Scheduler{
		collector: collector,
		schedule:  schedule,
		sinks:     sinks,
		logger:    slog.Default().With("component", "sysmetrics.scheduler"),
	}
}

// Start validates the schedule and begins periodic collection. It also
// runs one collection immediately so a fresh agent reports without
// waiting a full interval. A stopped scheduler can be started again.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid collection schedule %q: %w", s.schedule, err)
	}

	// A fresh cron per start: re-using the old one would stack a second
	// entry on every Stop/Start cycle.
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.collectOnce(ctx)
	}); err != nil {
		return fmt.Errorf("schedule collection: %w", err)
	}

	s.collectOnce(ctx)
	s.cron.Start()
	s.running = true
	s.logger.Info("host metric collection started", "schedule", s.schedule)
	return nil
}

// Stop halts scheduled collection and waits for an in-flight round.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.running = false
	s.logger.Info("host metric collection stopped")
}

func (s *Scheduler) collectOnce(ctx context.Context) {
	ms, err := s.collector.Collect(ctx)
	if err != nil {
		s.logger.Error("host metric collection failed", "error", err)
		return
	}
	for _, sink := range s.sinks {
		sink(ctx, ms)
	}
}
