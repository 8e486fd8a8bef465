package rollover

import (
	"context"
	"errors"
	"fmt"
	"time"

	"turn_queue/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ErrCooldown is returned by Fire when the guard suppressed the run.
var ErrCooldown = errors.New("rollover suppressed by cooldown")

// Scheduler fires the archive rollover once a day at a wall-clock time in
// the service time zone.
type Scheduler struct {
	cron     *cron.Cron
	schedule cron.Schedule
	coord    *Coordinator
	guard    Guard
	cooldown time.Duration
	logger   *zap.Logger
}

// NewScheduler registers the daily job for resetAt ("HH:MM" in loc).
func NewScheduler(coord *Coordinator, guard Guard, resetAt string, loc *time.Location, cooldown time.Duration, logger *zap.Logger) (*Scheduler, error) {
	hour, minute, err := config.ParseClock(resetAt)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if guard == nil {
		guard = NewMemoryGuard(coord.clock)
	}

	spec := fmt.Sprintf("%d %d * * *", minute, hour)
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", spec, err)
	}

	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: schedule,
		coord:    coord,
		guard:    guard,
		cooldown: cooldown,
		logger:   logger,
	}
	s.cron.Schedule(schedule, cron.FuncJob(func() {
		if _, err := s.Fire(context.Background()); err != nil && !errors.Is(err, ErrCooldown) {
			s.logger.Error("scheduled rollover failed", zap.Error(err))
		}
	}))
	return s, nil
}

// Start catches up days a previous process missed, then starts the timer.
func (s *Scheduler) Start(ctx context.Context) {
	if _, err := s.coord.CatchUp(ctx); err != nil {
		s.logger.Error("rollover catch-up failed", zap.Error(err))
	}
	s.cron.Start()
	s.logger.Info("rollover scheduler started", zap.Time("next", s.Next(time.Now())))
}

// Stop halts the timer and waits for a running job, or for ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("rollover scheduler stop timed out")
	}
}

// Next is the first firing after t.
func (s *Scheduler) Next(t time.Time) time.Time {
	return s.schedule.Next(t.In(s.cron.Location()))
}

// Fire runs today's scheduled rollover unless the guard has seen it within
// the cooldown. Stale days are archived first.
func (s *Scheduler) Fire(ctx context.Context) (*Result, error) {
	today := s.coord.Today()
	ok, err := s.guard.Acquire(ctx, "rollover:scheduled:"+today, s.cooldown)
	switch {
	case err != nil:
		s.logger.Warn("rollover guard unavailable, running anyway", zap.Error(err))
	case !ok:
		s.logger.Info("scheduled rollover skipped, cooldown active", zap.String("service_day", today))
		return nil, ErrCooldown
	}

	if _, err := s.coord.CatchUp(ctx); err != nil {
		return nil, err
	}
	return s.coord.Run(ctx, today, ModeArchive)
}
