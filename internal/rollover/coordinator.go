// Package rollover closes a service day: it archives tickets into facts and
// per-operator aggregates, clears the live queue and restarts numbering.
package rollover

import (
	"context"
	"strings"
	"time"

	"turn_queue/internal/apperr"
	"turn_queue/internal/clock"
	"turn_queue/internal/models"
	"turn_queue/internal/notify"
	"turn_queue/internal/storage"
	"turn_queue/internal/turns"
	"turn_queue/internal/windows"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Mode string

const (
	// ModeArchive projects the day's tickets into facts before deleting them.
	ModeArchive Mode = "ARCHIVE"
	// ModePurge deletes every live ticket without archiving.
	ModePurge Mode = "PURGE"
)

// ParseMode accepts a mode in any case; empty means ModeArchive.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToUpper(strings.TrimSpace(s))) {
	case "", ModeArchive:
		return ModeArchive, nil
	case ModePurge:
		return ModePurge, nil
	}
	return "", apperr.Invalid(apperr.CodeInvalidRolloverMode, "mode must be ARCHIVE or PURGE")
}

const factBatchSize = 200

// Result summarises one rollover run.
type Result struct {
	ServiceDay     string    `json:"serviceDay"`
	Mode           Mode      `json:"mode"`
	Archived       int       `json:"archived"`
	Aggregates     int       `json:"aggregates"`
	Deleted        int64     `json:"deleted"`
	SessionsClosed int64     `json:"sessionsClosed"`
	FactsPurged    int64     `json:"factsPurged"`
	StartNumber    int       `json:"startNumber"`
	CompletedAt    time.Time `json:"completedAt"`
}

// Overview is the cache the rollover must evict after clearing the queue.
type Overview interface {
	InvalidateOverview(ctx context.Context)
}

type Options struct {
	Locks         *storage.KeyLock
	Clock         clock.Clock
	Location      *time.Location
	StartDefault  int
	RetentionDays int
	Confirmation  string
	Publisher     notify.Publisher
	Overview      Overview
	Logger        *zap.Logger
}

type Coordinator struct {
	db            *gorm.DB
	locks         *storage.KeyLock
	clock         clock.Clock
	loc           *time.Location
	startDefault  int
	retentionDays int
	confirmation  string
	pub           notify.Publisher
	overview      Overview
	logger        *zap.Logger
	sf            singleflight.Group
}

func NewCoordinator(db *gorm.DB, opts Options) *Coordinator {
	c := &Coordinator{
		db:            db,
		locks:         opts.Locks,
		clock:         opts.Clock,
		loc:           opts.Location,
		startDefault:  opts.StartDefault,
		retentionDays: opts.RetentionDays,
		confirmation:  opts.Confirmation,
		pub:           opts.Publisher,
		overview:      opts.Overview,
		logger:        opts.Logger,
	}
	if c.locks == nil {
		c.locks = storage.NewKeyLock()
	}
	if c.clock == nil {
		c.clock = clock.Real()
	}
	if c.loc == nil {
		c.loc = time.UTC
	}
	if c.retentionDays <= 0 {
		c.retentionDays = 7
	}
	if c.pub == nil {
		c.pub = notify.Discard
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// Today is the current service day in the configured time zone.
func (c *Coordinator) Today() string {
	return clock.ServiceDay(c.clock.Now(), c.loc)
}

// RunManual is the admin entry point. The confirmation phrase must match
// exactly; on mismatch nothing is touched. An empty day means today.
func (c *Coordinator) RunManual(ctx context.Context, confirmation string, mode Mode, day string) (*Result, error) {
	if confirmation != c.confirmation {
		return nil, apperr.Invalid(apperr.CodeConfirmationMismatch, "confirmation phrase does not match")
	}
	if day == "" {
		day = c.Today()
	}
	return c.Run(ctx, day, mode)
}

// Run performs the rollover of day. Concurrent calls for the same day and
// mode share one execution. It is safe to repeat: a second run over an
// already cleared day archives nothing and only resets the counter again.
func (c *Coordinator) Run(ctx context.Context, day string, mode Mode) (*Result, error) {
	if _, err := clock.ParseDay(day, c.loc); err != nil {
		return nil, apperr.Invalid(apperr.CodeInvalidServiceDay, "service day must be YYYY-MM-DD")
	}
	if day > c.Today() {
		return nil, apperr.Invalid(apperr.CodeInvalidServiceDay, "cannot roll over a service day that has not started")
	}
	if mode != ModeArchive && mode != ModePurge {
		return nil, apperr.Invalid(apperr.CodeInvalidRolloverMode, "mode must be ARCHIVE or PURGE")
	}

	v, err, shared := c.sf.Do(day+"/"+string(mode), func() (any, error) {
		// A caller going away must not abort a half-finished reset.
		return c.run(context.WithoutCancel(ctx), day, mode)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Info("rollover shared with concurrent trigger", zap.String("service_day", day))
	}
	return v.(*Result), nil
}

func (c *Coordinator) run(ctx context.Context, day string, mode Mode) (*Result, error) {
	unlock := c.locks.LockAll()
	defer unlock()

	started := time.Now()
	now := c.clock.Now().UTC()
	// counters at or after the current day stay; live tickets may still use them
	evictBefore := day
	if today := c.Today(); today < evictBefore {
		evictBefore = today
	}
	res := &Result{ServiceDay: day, Mode: mode}

	cutoff, err := clock.AddDays(day, -c.retentionDays, c.loc)
	if err != nil {
		return nil, apperr.Invalid(apperr.CodeInvalidServiceDay, "service day must be YYYY-MM-DD")
	}

	err = storage.WithTx(ctx, c.db, func(tx *gorm.DB) error {
		closed, err := windows.CloseAllSessions(tx, now)
		if err != nil {
			return err
		}
		res.SessionsClosed = closed

		if mode == ModeArchive {
			archived, aggregates, err := archive(tx, day, now)
			if err != nil {
				return err
			}
			res.Archived, res.Aggregates = archived, aggregates
		}

		del := tx.Where("service_day = ?", day)
		if mode == ModePurge {
			del = tx.Where("1 = 1")
		}
		deleted := del.Delete(&models.Ticket{})
		if deleted.Error != nil {
			return apperr.Storage(deleted.Error)
		}
		res.Deleted = deleted.RowsAffected

		start, err := turns.StartValue(tx, c.startDefault)
		if err != nil {
			return err
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "service_day"}},
			DoUpdates: clause.AssignmentColumns([]string{"next_number"}),
		}).Create(&models.DayCounter{ServiceDay: day, NextNumber: start}).Error; err != nil {
			return apperr.Storage(err)
		}
		if err := tx.Where("service_day < ?", evictBefore).Delete(&models.DayCounter{}).Error; err != nil {
			return apperr.Storage(err)
		}
		res.StartNumber = start

		purged := tx.Where("service_day < ?", cutoff).Delete(&models.TicketFact{})
		if purged.Error != nil {
			return apperr.Storage(purged.Error)
		}
		res.FactsPurged = purged.RowsAffected

		state := models.SystemState{
			ID:               models.SystemStateID,
			LastRolloverDay:  &day,
			LastRolloverAt:   &now,
			LastRolloverMode: string(mode),
		}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&state).Error; err != nil {
			return apperr.Storage(err)
		}
		return nil
	})
	if err != nil {
		c.logger.Error("rollover failed", zap.String("service_day", day), zap.String("mode", string(mode)), zap.Error(err))
		return nil, err
	}
	res.CompletedAt = now

	if c.overview != nil {
		c.overview.InvalidateOverview(ctx)
	}
	c.pub.Publish(notify.QueueReset(), notify.WindowStateChanged())

	c.logger.Info("rollover completed",
		zap.String("service_day", day),
		zap.String("mode", string(mode)),
		zap.Int("archived", res.Archived),
		zap.Int64("deleted", res.Deleted),
		zap.Int64("sessions_closed", res.SessionsClosed),
		zap.Int64("facts_purged", res.FactsPurged),
		zap.Duration("took", time.Since(started)))
	return res, nil
}

// archive writes a fact per ticket of day not archived yet and, when any
// were written, rebuilds the day's aggregates from all of its facts.
func archive(tx *gorm.DB, day string, now time.Time) (archived, aggregates int, err error) {
	var tickets []models.Ticket
	if err := tx.Where("service_day = ?", day).Order("number").Find(&tickets).Error; err != nil {
		return 0, 0, apperr.Storage(err)
	}
	if len(tickets) == 0 {
		return 0, 0, nil
	}

	facts := make([]models.TicketFact, 0, len(tickets))
	for i := range tickets {
		facts = append(facts, Project(&tickets[i], now))
	}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticket_id"}},
		DoNothing: true,
	}).CreateInBatches(&facts, factBatchSize)
	if res.Error != nil {
		return 0, 0, apperr.Storage(res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, 0, nil
	}

	var all []models.TicketFact
	if err := tx.Where("service_day = ?", day).Find(&all).Error; err != nil {
		return 0, 0, apperr.Storage(err)
	}
	rows := Aggregate(day, all)
	if err := tx.Where("service_day = ?", day).Delete(&models.OperatorDailyAggregate{}).Error; err != nil {
		return 0, 0, apperr.Storage(err)
	}
	if len(rows) > 0 {
		if err := tx.Create(&rows).Error; err != nil {
			return 0, 0, apperr.Storage(err)
		}
	}
	return int(res.RowsAffected), len(rows), nil
}

// StaleDays lists service days before today that still hold live tickets,
// oldest first. They are what a missed scheduled rollover leaves behind.
func (c *Coordinator) StaleDays(ctx context.Context) ([]string, error) {
	var days []string
	if err := c.db.WithContext(ctx).Model(&models.Ticket{}).
		Where("service_day < ?", c.Today()).
		Distinct("service_day").
		Order("service_day").
		Pluck("service_day", &days).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return days, nil
}

// CatchUp archives every stale day.
func (c *Coordinator) CatchUp(ctx context.Context) ([]*Result, error) {
	days, err := c.StaleDays(ctx)
	if err != nil {
		return nil, err
	}
	var out []*Result
	for _, day := range days {
		c.logger.Warn("catching up missed rollover", zap.String("service_day", day))
		res, err := c.Run(ctx, day, ModeArchive)
		if err != nil {
			return out, err
		}
		out = append(out, res)
	}
	return out, nil
}

// LastRun returns the recorded state of the most recent rollover, or nil.
func (c *Coordinator) LastRun(ctx context.Context) (*models.SystemState, error) {
	var state models.SystemState
	err := c.db.WithContext(ctx).Where("id = ?", models.SystemStateID).First(&state).Error
	if storage.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return &state, nil
}

// OperatorStats returns the archived per-operator aggregates of day.
func (c *Coordinator) OperatorStats(ctx context.Context, day string) ([]models.OperatorDailyAggregate, error) {
	if _, err := clock.ParseDay(day, c.loc); err != nil {
		return nil, apperr.Invalid(apperr.CodeInvalidServiceDay, "service day must be YYYY-MM-DD")
	}
	var out []models.OperatorDailyAggregate
	if err := c.db.WithContext(ctx).
		Where("service_day = ?", day).
		Order("served_count DESC").Order("operator_id").
		Find(&out).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return out, nil
}
