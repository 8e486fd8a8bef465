// Package turns issues tickets and moves them through their lifecycle.
package turns

import (
	"context"
	"time"

	"turn_queue/internal/apperr"
	"turn_queue/internal/clock"
	"turn_queue/internal/models"
	"turn_queue/internal/notify"
	"turn_queue/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultRecentLimit = 10
	MaxRecentLimit     = 50
)

// Windows is the slice of the ownership manager the ticket service needs.
type Windows interface {
	// CheckOwnership must use tx so the check commits with the mutation.
	CheckOwnership(tx *gorm.DB, userID string, number int) (*models.Window, error)
	InvalidateOverview(ctx context.Context)
}

type Options struct {
	Locks        *storage.KeyLock
	Clock        clock.Clock
	Location     *time.Location
	StartDefault int
	Publisher    notify.Publisher
	Logger       *zap.Logger
}

type Service struct {
	db      *gorm.DB
	locks   *storage.KeyLock
	clock   clock.Clock
	loc     *time.Location
	alloc   *Allocator
	windows Windows
	pub     notify.Publisher
	logger  *zap.Logger
}

func NewService(db *gorm.DB, windows Windows, opts Options) *Service {
	s := &Service{
		db:      db,
		locks:   opts.Locks,
		clock:   opts.Clock,
		loc:     opts.Location,
		windows: windows,
		pub:     opts.Publisher,
		logger:  opts.Logger,
	}
	if s.locks == nil {
		s.locks = storage.NewKeyLock()
	}
	if s.clock == nil {
		s.clock = clock.Real()
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.pub == nil {
		s.pub = notify.Discard
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	s.alloc = NewAllocator(db, s.locks, opts.StartDefault)
	return s
}

// Allocator exposes the service's number allocator, which shares its locks.
func (s *Service) Allocator() *Allocator { return s.alloc }

// Today is the current service day.
func (s *Service) Today() string {
	return clock.ServiceDay(s.clock.Now(), s.loc)
}

type CreateRequest struct {
	PriorityClass string `json:"priorityClass" example:"STANDARD"`
	StartOverride *int   `json:"startOverride,omitempty" example:"100"`
}

// CreateTicket issues the next number of today as a PENDING ticket.
func (s *Service) CreateTicket(ctx context.Context, req CreateRequest) (*models.Ticket, error) {
	class := models.ClassStandard
	if req.PriorityClass != "" {
		c, ok := models.ParseClass(req.PriorityClass)
		if !ok {
			return nil, apperr.Invalid(apperr.CodeInvalidPriorityClass, "unknown priority class")
		}
		class = c
	}
	if err := validateOverride(req.StartOverride); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	day := clock.ServiceDay(now, s.loc)

	unlock := s.locks.Lock(storage.DayKey(day))
	defer unlock()

	var ticket models.Ticket
	err := storage.WithTx(ctx, s.db, func(tx *gorm.DB) error {
		n, err := s.alloc.allocate(tx, day, req.StartOverride)
		if err != nil {
			return err
		}
		ticket = models.Ticket{
			ServiceDay:    day,
			Number:        n,
			PriorityClass: class,
			Status:        models.StatusPending,
			CreatedAt:     now.UTC(),
		}
		if err := tx.Create(&ticket).Error; err != nil {
			if storage.IsUniqueViolation(err) {
				return apperr.Race(err)
			}
			return apperr.Storage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ticket created",
		zap.String("ticket_id", ticket.ID),
		zap.String("service_day", day),
		zap.Int("number", ticket.Number),
		zap.String("class", string(class)))
	s.windows.InvalidateOverview(ctx)
	s.pub.Publish(notify.TicketCreated(&ticket))
	return &ticket, nil
}

// Recent lists today's tickets, newest number first. limit is clamped to
// [1, MaxRecentLimit]; zero means DefaultRecentLimit.
func (s *Service) Recent(ctx context.Context, limit int) ([]models.Ticket, error) {
	switch {
	case limit == 0:
		limit = DefaultRecentLimit
	case limit < 1:
		limit = 1
	case limit > MaxRecentLimit:
		limit = MaxRecentLimit
	}

	var out []models.Ticket
	if err := s.db.WithContext(ctx).
		Where("service_day = ?", s.Today()).
		Order("number DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return out, nil
}

// Pending lists today's PENDING tickets in selection order, optionally
// restricted to one class, dropping classes hidden from audience.
func (s *Service) Pending(ctx context.Context, class *models.PriorityClass, audience models.Audience) ([]models.Ticket, error) {
	q := s.db.WithContext(ctx).Where("service_day = ? AND status = ?", s.Today(), models.StatusPending)
	if class != nil {
		q = q.Where("priority_class = ?", *class)
	}

	var rows []models.Ticket
	if err := q.Order(models.RankOrderSQL("priority_class")).
		Order("number").Order("created_at").
		Find(&rows).Error; err != nil {
		return nil, apperr.Storage(err)
	}

	out := rows[:0]
	for _, t := range rows {
		if t.PriorityClass.VisibleTo(audience) {
			out = append(out, t)
		}
	}
	return out, nil
}

// TakeNext calls the next PENDING ticket to window number. Lower class rank
// goes first, then lower number, then earlier creation.
func (s *Service) TakeNext(ctx context.Context, operatorID string, number int, class *models.PriorityClass) (*models.Ticket, error) {
	if number <= 0 {
		return nil, apperr.Invalid(apperr.CodeInvalidWindowNumber, "window number must be positive")
	}
	if class != nil && !class.Valid() {
		return nil, apperr.Invalid(apperr.CodeInvalidPriorityClass, "unknown priority class")
	}

	unlock := s.locks.Lock(storage.QueueKey(), storage.WindowKey(number))
	defer unlock()

	var ticket models.Ticket
	err := storage.WithTx(ctx, s.db, func(tx *gorm.DB) error {
		win, err := s.windows.CheckOwnership(tx, operatorID, number)
		if err != nil {
			return err
		}

		q := tx.Scopes(storage.ForUpdateSkipLocked).Where("status = ?", models.StatusPending)
		if class != nil {
			q = q.Where("priority_class = ?", *class)
		}
		if err := q.Order(models.RankOrderSQL("priority_class")).
			Order("number").Order("created_at").
			First(&ticket).Error; err != nil {
			if storage.IsNotFound(err) {
				return apperr.Missing(apperr.CodeQueueEmpty, "no pending tickets")
			}
			return apperr.Storage(err)
		}

		if err := Apply(&ticket, ActionCall, win, operatorID, s.clock.Now()); err != nil {
			return err
		}
		if err := tx.Save(&ticket).Error; err != nil {
			return apperr.Storage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ticket called",
		zap.String("ticket_id", ticket.ID),
		zap.Int("number", ticket.Number),
		zap.Int("window", number),
		zap.String("operator_id", operatorID))
	s.windows.InvalidateOverview(ctx)
	s.pub.Publish(
		notify.TicketUpdated(&ticket),
		notify.WindowStateChanged(),
		notify.WindowBell(number, &ticket.Number),
	)
	return &ticket, nil
}

// MarkServing moves a CALLED ticket to SERVING.
func (s *Service) MarkServing(ctx context.Context, operatorID string, number int, ticketID string) (*models.Ticket, error) {
	return s.act(ctx, operatorID, number, ticketID, ActionServe)
}

// Complete finishes a CALLED or SERVING ticket.
func (s *Service) Complete(ctx context.Context, operatorID string, number int, ticketID string) (*models.Ticket, error) {
	return s.act(ctx, operatorID, number, ticketID, ActionComplete)
}

// Skip marks a CALLED ticket as a no-show. A ticket already being served
// can only be completed.
func (s *Service) Skip(ctx context.Context, operatorID string, number int, ticketID string) (*models.Ticket, error) {
	return s.act(ctx, operatorID, number, ticketID, ActionSkip)
}

func (s *Service) act(ctx context.Context, operatorID string, number int, ticketID string, action Action) (*models.Ticket, error) {
	if number <= 0 {
		return nil, apperr.Invalid(apperr.CodeInvalidWindowNumber, "window number must be positive")
	}
	if _, err := uuid.Parse(ticketID); err != nil {
		return nil, apperr.Invalid(apperr.CodeInvalidTicketID, "ticket id must be a UUID")
	}

	unlock := s.locks.Lock(storage.WindowKey(number), storage.TicketKey(ticketID))
	defer unlock()

	var ticket models.Ticket
	err := storage.WithTx(ctx, s.db, func(tx *gorm.DB) error {
		win, err := s.windows.CheckOwnership(tx, operatorID, number)
		if err != nil {
			return err
		}
		if err := tx.Scopes(storage.ForUpdate).Where("id = ?", ticketID).First(&ticket).Error; err != nil {
			if storage.IsNotFound(err) {
				return apperr.Missing(apperr.CodeTicketNotFound, "ticket not found")
			}
			return apperr.Storage(err)
		}
		if err := Apply(&ticket, action, win, operatorID, s.clock.Now()); err != nil {
			return err
		}
		if err := tx.Save(&ticket).Error; err != nil {
			return apperr.Storage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ticket updated",
		zap.String("ticket_id", ticket.ID),
		zap.String("status", string(ticket.Status)),
		zap.Int("window", number),
		zap.String("operator_id", operatorID))
	s.windows.InvalidateOverview(ctx)
	s.pub.Publish(notify.TicketUpdated(&ticket), notify.WindowStateChanged())
	return &ticket, nil
}
