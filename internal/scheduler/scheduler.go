// Package scheduler runs the minute-resolution dispatch loop over the
// persisted schedule entries.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"telepilot/internal/observability"
	"telepilot/internal/schedule"
)

// Source reloads the schedule list. It is consulted once per dispatched
// minute so operator edits take effect without a restart.
type Source interface {
	Schedules() ([]schedule.Entry, error)
}

// EntryRunner executes one fired schedule entry end to end: resolve the
// device, connect, run the scenario, disconnect.
type EntryRunner interface {
	RunEntry(ctx context.Context, entry schedule.Entry) error
}

// Scheduler is a perpetual dispatcher. Deduplication relies solely on the
// last dispatched (hour, minute) pair: at most one dispatch per observed
// minute, and a minute missed while descheduled is never caught up.
type Scheduler struct {
	source  Source
	runner  EntryRunner
	log     *slog.Logger
	metrics *observability.Metrics

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New builds a scheduler over a schedule source and an entry runner. metrics
// may be nil.
func New(source Source, runner EntryRunner, log *slog.Logger, metrics *observability.Metrics) *Scheduler {
	return &Scheduler{
		source:  source,
		runner:  runner,
		log:     log,
		metrics: metrics,
		now:     time.Now,
		sleep:   sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Run loops until ctx is cancelled. Each observed minute is dispatched at
// most once; entry failures are logged and isolated from one another.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Info("scheduler demarre", "politique", "au plus une execution par minute observee, pas de rattrapage")

	var lastDispatched *[2]int

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		now := s.now()
		current := [2]int{now.Hour(), now.Minute()}

		if lastDispatched == nil || *lastDispatched != current {
			lastDispatched = &current
			s.dispatch(ctx, now)
		}

		// Sleep until the start of the next minute; at least one second so a
		// wake racing the minute boundary cannot busy-loop.
		remaining := 60 - s.now().Second()
		if remaining < 1 {
			remaining = 1
		}
		if err := s.sleep(ctx, time.Duration(remaining)*time.Second); err != nil {
			return err
		}
	}
}

// dispatch reloads the schedule list and fires every enabled entry matching
// now, sequentially, in list order.
func (s *Scheduler) dispatch(ctx context.Context, now time.Time) {
	if s.metrics != nil {
		s.metrics.SchedulerDispatch.Inc()
	}

	entries, err := s.source.Schedules()
	if err != nil {
		s.log.Error("rechargement des planifications impossible", "error", err)
		return
	}

	for _, entry := range entries {
		if !entry.Enabled || !entry.ShouldRunAt(now) {
			continue
		}

		s.log.Info("declenchement",
			"scenario", entry.Scenario,
			"device", entry.Device,
			"heure", entry.TimeString())

		if err := s.runner.RunEntry(ctx, entry); err != nil {
			s.log.Error("execution planifiee echouee",
				"scenario", entry.Scenario,
				"device", entry.Device,
				"error", err)
		}
	}
}
