// Package scheduler runs the background refresh jobs of the watch daemon.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
)

// JobFunc represents a function that can be scheduled.
type JobFunc func(ctx context.Context) error

// Scheduler manages scheduled jobs.
type Scheduler struct {
	gocron gocron.Scheduler
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new scheduler.
func New() (*Scheduler, error) {
	gocronScheduler, err := gocron.NewScheduler(gocron.WithLogger(newLogger()))
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		gocron: gocronScheduler,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// AddJob registers a named interval job. Jobs are singletons: a run that
// is still in progress is never overlapped by the next tick. When
// runAtStart is true the job also fires immediately after Start.
func (s *Scheduler) AddJob(name string, interval time.Duration, runAtStart bool, fn JobFunc) error {
	opts := []gocron.JobOption{
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if runAtStart {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	_, err := s.gocron.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := fn(s.ctx); err != nil {
				log.Error("job failed", "job", name, "error", err)
				return
			}
			log.Debug("job completed", "job", name)
		}),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}
	return nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	log.Info("starting job scheduler")
	s.gocron.Start()
}

// Stop cancels running jobs and shuts the scheduler down.
func (s *Scheduler) Stop() error {
	s.cancel()
	if err := s.gocron.Shutdown(); err != nil {
		return fmt.Errorf("failed to shut down scheduler: %w", err)
	}
	log.Info("job scheduler stopped")
	return nil
}
