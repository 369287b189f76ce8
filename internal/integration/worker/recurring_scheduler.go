// Package worker runs background jobs.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/personal-finance/backend/internal/application/usecase/recurring"
)

// DefaultCronSpec fires every day at midnight.
const DefaultCronSpec = "0 0 * * *"

// ErrRunInProgress is returned by RunOnce when a previous run has not finished.
var ErrRunInProgress = errors.New("recurring run already in progress")

// RecurringProcessor advances every due recurring transaction once.
type RecurringProcessor interface {
	Execute(ctx context.Context) (*recurring.ProcessDueRecurringOutput, error)
}

// SchedulerConfig holds configuration for the recurring scheduler.
type SchedulerConfig struct {
	CronSpec   string
	Location   *time.Location
	RunTimeout time.Duration
}

// DefaultSchedulerConfig returns the default scheduler configuration.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		CronSpec:   DefaultCronSpec,
		Location:   time.UTC,
		RunTimeout: 30 * time.Minute,
	}
}

// RecurringScheduler triggers the recurring processor on a cron schedule.
// At most one run is in flight at any time.
type RecurringScheduler struct {
	processor RecurringProcessor
	config    SchedulerConfig

	mu      sync.Mutex
	cron    *cron.Cron
	running atomic.Bool
}

// NewRecurringScheduler creates a new recurring scheduler.
func NewRecurringScheduler(processor RecurringProcessor, config SchedulerConfig) *RecurringScheduler {
	if config.CronSpec == "" {
		config.CronSpec = DefaultCronSpec
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.RunTimeout <= 0 {
		config.RunTimeout = DefaultSchedulerConfig().RunTimeout
	}
	return &RecurringScheduler{
		processor: processor,
		config:    config,
	}
}

// Start registers the cron job and starts the schedule. Calling Start on a
// started scheduler is a no-op.
func (s *RecurringScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return nil
	}

	c := cron.New(cron.WithLocation(s.config.Location))
	if _, err := c.AddFunc(s.config.CronSpec, s.runScheduled); err != nil {
		return fmt.Errorf("failed to schedule recurring job %q: %w", s.config.CronSpec, err)
	}
	c.Start()
	s.cron = c

	slog.Info("Recurring scheduler started",
		"cron", s.config.CronSpec,
		"location", s.config.Location.String(),
	)
	return nil
}

// Stop halts the schedule and waits for an in-flight run to finish or for
// ctx to expire. Calling Stop on a stopped scheduler is a no-op.
func (s *RecurringScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c == nil {
		return nil
	}

	select {
	case <-c.Stop().Done():
		slog.Info("Recurring scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsStarted reports whether the cron schedule is active.
func (s *RecurringScheduler) IsStarted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cron != nil
}

// IsRunning reports whether a run is in flight.
func (s *RecurringScheduler) IsRunning() bool {
	return s.running.Load()
}

// RunOnce executes one run immediately. It returns ErrRunInProgress when a
// run is already in flight.
func (s *RecurringScheduler) RunOnce(ctx context.Context) (*recurring.ProcessDueRecurringOutput, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer s.running.Store(false)

	started := time.Now()
	output, err := s.processor.Execute(ctx)
	if err != nil {
		slog.Error("Recurring run failed", "error", err, "duration", time.Since(started))
		return nil, err
	}

	slog.Info("Recurring run finished",
		"scanned", output.Scanned,
		"created", output.Created,
		"skipped", output.Skipped,
		"failed", output.Failed,
		"duration", time.Since(started),
	)
	return output, nil
}

// runScheduled is the cron callback.
func (s *RecurringScheduler) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.RunTimeout)
	defer cancel()

	if _, err := s.RunOnce(ctx); errors.Is(err, ErrRunInProgress) {
		slog.Warn("Skipping recurring run, previous run still in progress")
	}
}
