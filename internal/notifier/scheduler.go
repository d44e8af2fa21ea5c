// Package notifier runs the daily expiry notification job at a configurable
// time of day.
package notifier

import (
	"context"
	"sync"
	"time"

	"pantry-hub/internal/metrics"
	"pantry-hub/internal/model"

	"github.com/rs/zerolog"
)

// Runner performs one notification pass.
type Runner interface {
	Run(ctx context.Context) (int, error)
}

// ScheduleSource supplies the configured time of day.
type ScheduleSource interface {
	Get(ctx context.Context) (model.Schedule, error)
}

// NextRun returns the delay from now until the next hour:minute in now's
// location, always strictly in the future.
func NextRun(now time.Time, hour, minute int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, hour, minute, 0, 0, now.Location())
	}
	return next.Sub(now)
}

// Scheduler arms a one-shot timer for the next scheduled time, runs the job
// when it fires and then re-arms for the following day. Reschedule replaces
// the armed timer.
type Scheduler struct {
	runner   Runner
	source   ScheduleSource
	defaults model.Schedule
	retry    RetryPolicy
	now      func() time.Time
	next     func(now time.Time, s model.Schedule) time.Duration
	rearm    chan struct{}
	done     chan struct{}
	once     sync.Once
	logger   zerolog.Logger
}

// NewScheduler creates a scheduler. defaults are used when source fails.
func NewScheduler(runner Runner, source ScheduleSource, defaults model.Schedule, retry RetryPolicy, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		source:   source,
		defaults: defaults,
		retry:    retry,
		now:      time.Now,
		next: func(now time.Time, s model.Schedule) time.Duration {
			return NextRun(now, s.Hour, s.Minute)
		},
		rearm:  make(chan struct{}, 1),
		done:   make(chan struct{}),
		logger: logger.With().Str("component", "scheduler").Logger(),
	}
}

// Start runs the scheduling loop in a goroutine until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.loop(ctx)
}

// Done is closed once the loop has exited.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

// Reschedule discards the armed timer and arms a new one from the current
// schedule. It never blocks.
func (s *Scheduler) Reschedule() {
	select {
	case s.rearm <- struct{}{}:
	default:
	}
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.once.Do(func() { close(s.done) })

	for {
		schedule := s.schedule(ctx)
		wait := s.next(s.now(), schedule)

		s.logger.Info().
			Int("hour", schedule.Hour).
			Int("minute", schedule.Minute).
			Dur("wait", wait).
			Msg("notification run armed")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info().Msg("scheduler stopped")
			return
		case <-s.rearm:
			timer.Stop()
			s.logger.Debug().Msg("schedule changed, re-arming")
		case <-timer.C:
			s.runWithRetry(ctx)
		}
	}
}

func (s *Scheduler) schedule(ctx context.Context) model.Schedule {
	schedule, err := s.source.Get(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read schedule, using defaults")
		return s.defaults
	}
	return schedule
}

// runWithRetry runs the job, retrying failures with exponential backoff.
func (s *Scheduler) runWithRetry(ctx context.Context) {
	for attempt := 0; ; attempt++ {
		start := time.Now()
		created, err := s.runner.Run(ctx)
		if err == nil {
			metrics.IncNotifierRun("success")
			s.logger.Info().
				Int("created", created).
				Dur("elapsed", time.Since(start)).
				Msg("notification run completed")
			return
		}

		if attempt >= s.retry.MaxRetries {
			metrics.IncNotifierRun("failure")
			s.logger.Error().
				Err(err).
				Int("attempts", attempt+1).
				Msg("notification run failed, giving up until next schedule")
			return
		}

		delay := s.retry.NextDelay(attempt + 1)
		metrics.IncNotifierRun("retry")
		s.logger.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Dur("retry_in", delay).
			Msg("notification run failed")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}
