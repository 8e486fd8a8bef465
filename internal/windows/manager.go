// Package windows owns the binding between operators and service windows.
// It is the only writer of worker sessions.
package windows

import (
	"context"
	"errors"
	"time"

	"turn_queue/internal/apperr"
	"turn_queue/internal/cache"
	"turn_queue/internal/clock"
	"turn_queue/internal/models"
	"turn_queue/internal/notify"
	"turn_queue/internal/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// errSessionMoved means the user's open session changed between the
// unlocked peek and the locked transaction.
var errSessionMoved = errors.New("open session moved")

type Options struct {
	Locks     *storage.KeyLock
	Clock     clock.Clock
	Location  *time.Location
	Publisher notify.Publisher
	Cache     cache.Cacher
	CacheTTL  time.Duration
	Logger    *zap.Logger
}

type Manager struct {
	db       *gorm.DB
	locks    *storage.KeyLock
	clock    clock.Clock
	loc      *time.Location
	pub      notify.Publisher
	cache    cache.Cacher
	cacheTTL time.Duration
	sf       singleflight.Group
	logger   *zap.Logger
}

func NewManager(db *gorm.DB, opts Options) *Manager {
	m := &Manager{
		db:       db,
		locks:    opts.Locks,
		clock:    opts.Clock,
		loc:      opts.Location,
		pub:      opts.Publisher,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		logger:   opts.Logger,
	}
	if m.locks == nil {
		m.locks = storage.NewKeyLock()
	}
	if m.clock == nil {
		m.clock = clock.Real()
	}
	if m.loc == nil {
		m.loc = time.UTC
	}
	if m.pub == nil {
		m.pub = notify.Discard
	}
	if m.cache == nil {
		m.cache = cache.NewMemoryCache(m.clock)
	}
	if m.cacheTTL <= 0 {
		m.cacheTTL = 5 * time.Second
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	return m
}

// OpenSession binds userID to window number, closing whatever session the
// user had open before.
func (m *Manager) OpenSession(ctx context.Context, userID string, number int) (*models.WorkerSession, error) {
	if number <= 0 {
		return nil, apperr.Invalid(apperr.CodeInvalidWindowNumber, "window number must be positive")
	}
	return m.open(ctx, userID, models.SessionWindow, number)
}

// OpenAssignerSession starts a session that hands out tickets without
// owning a window.
func (m *Manager) OpenAssignerSession(ctx context.Context, userID string) (*models.WorkerSession, error) {
	return m.open(ctx, userID, models.SessionAssigner, 0)
}

func (m *Manager) open(ctx context.Context, userID string, mode models.SessionMode, number int) (*models.WorkerSession, error) {
	for {
		prev, err := m.peekWindow(ctx, userID)
		if err != nil {
			return nil, err
		}

		session, err := m.openLocked(ctx, userID, mode, number, prev)
		if errors.Is(err, errSessionMoved) {
			continue
		}
		if err != nil {
			return nil, err
		}

		m.logger.Info("session opened",
			zap.String("user_id", userID),
			zap.String("mode", string(mode)),
			zap.Int("window", number))
		m.changed(ctx)
		return session, nil
	}
}

func (m *Manager) openLocked(ctx context.Context, userID string, mode models.SessionMode, number, prev int) (*models.WorkerSession, error) {
	keys := []storage.Key{storage.UserKey(userID)}
	if number > 0 {
		keys = append(keys, storage.WindowKey(number))
	}
	if prev > 0 {
		keys = append(keys, storage.WindowKey(prev))
	}
	unlock := m.locks.Lock(keys...)
	defer unlock()

	var session models.WorkerSession
	err := storage.WithTx(ctx, m.db, func(tx *gorm.DB) error {
		current, err := openSessionOf(tx, userID)
		if err != nil {
			return err
		}
		if windowNumberOf(current) != prev {
			return errSessionMoved
		}

		session = models.WorkerSession{UserID: userID, Mode: mode}
		if mode == models.SessionWindow {
			var win models.Window
			if err := tx.Where("number = ? AND active = ?", number, true).First(&win).Error; err != nil {
				if storage.IsNotFound(err) {
					return apperr.Missing(apperr.CodeWindowNotFound, "window not found or inactive")
				}
				return apperr.Storage(err)
			}

			var taken int64
			if err := tx.Model(&models.WorkerSession{}).
				Where("window_id = ? AND ended_at IS NULL AND user_id <> ?", win.ID, userID).
				Count(&taken).Error; err != nil {
				return apperr.Storage(err)
			}
			if taken > 0 {
				return apperr.Conflicting(apperr.CodeWindowBusy, "window is already taken by another operator")
			}
			session.WindowID = &win.ID
			session.WindowNumber = &win.Number
		}

		now := m.clock.Now().UTC()
		if current != nil {
			if err := tx.Model(current).Update("ended_at", now).Error; err != nil {
				return apperr.Storage(err)
			}
		}

		session.StartedAt = now
		if err := tx.Create(&session).Error; err != nil {
			if storage.IsUniqueViolation(err) {
				return apperr.Conflicting(apperr.CodeWindowBusy, "window is already taken by another operator")
			}
			return apperr.Storage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// CloseSession ends the user's open session. Closing when nothing is open
// is not an error; the returned session is nil in that case.
func (m *Manager) CloseSession(ctx context.Context, userID string) (*models.WorkerSession, error) {
	for {
		prev, err := m.peekWindow(ctx, userID)
		if err != nil {
			return nil, err
		}

		keys := []storage.Key{storage.UserKey(userID)}
		if prev > 0 {
			keys = append(keys, storage.WindowKey(prev))
		}
		unlock := m.locks.Lock(keys...)

		var closed *models.WorkerSession
		err = storage.WithTx(ctx, m.db, func(tx *gorm.DB) error {
			current, err := openSessionOf(tx, userID)
			if err != nil {
				return err
			}
			if windowNumberOf(current) != prev {
				return errSessionMoved
			}
			if current == nil {
				return nil
			}
			now := m.clock.Now().UTC()
			if err := tx.Model(current).Update("ended_at", now).Error; err != nil {
				return apperr.Storage(err)
			}
			current.EndedAt = &now
			closed = current
			return nil
		})
		unlock()

		if errors.Is(err, errSessionMoved) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if closed != nil {
			m.logger.Info("session closed", zap.String("user_id", userID), zap.Int("window", windowNumberOf(closed)))
			m.changed(ctx)
		}
		return closed, nil
	}
}

// MySession returns the user's open session, or nil.
func (m *Manager) MySession(ctx context.Context, userID string) (*models.WorkerSession, error) {
	return openSessionOf(m.db.WithContext(ctx), userID)
}

// CheckOwnership resolves an active window and verifies that userID holds
// the open session bound to it. It runs on the caller's transaction so the
// check and the mutation it guards commit together.
func (m *Manager) CheckOwnership(tx *gorm.DB, userID string, number int) (*models.Window, error) {
	var win models.Window
	if err := tx.Where("number = ? AND active = ?", number, true).First(&win).Error; err != nil {
		if storage.IsNotFound(err) {
			return nil, apperr.Missing(apperr.CodeWindowNotFound, "window not found or inactive")
		}
		return nil, apperr.Storage(err)
	}

	var owned int64
	if err := tx.Model(&models.WorkerSession{}).
		Where("user_id = ? AND window_id = ? AND mode = ? AND ended_at IS NULL", userID, win.ID, models.SessionWindow).
		Count(&owned).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	if owned == 0 {
		return nil, apperr.Denied(apperr.CodeNotWindowOwner, "you do not own this window")
	}
	return &win, nil
}

// HasOwnership reports whether userID currently owns window number.
func (m *Manager) HasOwnership(ctx context.Context, userID string, number int) (bool, error) {
	_, err := m.CheckOwnership(m.db.WithContext(ctx), userID, number)
	switch apperr.KindOf(err) {
	case apperr.Forbidden, apperr.NotFound:
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// RingBell re-announces the window's current ticket. Only the owner may ring.
func (m *Manager) RingBell(ctx context.Context, userID string, number int) (*int, error) {
	if number <= 0 {
		return nil, apperr.Invalid(apperr.CodeInvalidWindowNumber, "window number must be positive")
	}
	unlock := m.locks.Lock(storage.WindowKey(number))
	defer unlock()

	var ticketNumber *int
	err := storage.WithTx(ctx, m.db, func(tx *gorm.DB) error {
		win, err := m.CheckOwnership(tx, userID, number)
		if err != nil {
			return err
		}
		current, err := currentTicket(tx, win.ID)
		if err != nil {
			return err
		}
		if current != nil {
			ticketNumber = &current.Number
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.pub.Publish(notify.WindowBell(number, ticketNumber))
	return ticketNumber, nil
}

// CloseAllSessions ends every open session at now. It is called by the
// daily rollover inside its own transaction.
func CloseAllSessions(tx *gorm.DB, now time.Time) (int64, error) {
	res := tx.Model(&models.WorkerSession{}).Where("ended_at IS NULL").Update("ended_at", now)
	if res.Error != nil {
		return 0, apperr.Storage(res.Error)
	}
	return res.RowsAffected, nil
}

func (m *Manager) peekWindow(ctx context.Context, userID string) (int, error) {
	s, err := openSessionOf(m.db.WithContext(ctx), userID)
	if err != nil {
		return 0, err
	}
	return windowNumberOf(s), nil
}

func (m *Manager) changed(ctx context.Context) {
	m.InvalidateOverview(ctx)
	m.pub.Publish(notify.WindowStateChanged())
}

func openSessionOf(db *gorm.DB, userID string) (*models.WorkerSession, error) {
	var s models.WorkerSession
	err := db.Where("user_id = ? AND ended_at IS NULL", userID).First(&s).Error
	if storage.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return &s, nil
}

func windowNumberOf(s *models.WorkerSession) int {
	if s == nil || s.WindowNumber == nil {
		return 0
	}
	return *s.WindowNumber
}

// currentTicket is the most recently called ticket still open at windowID.
func currentTicket(db *gorm.DB, windowID string) (*models.Ticket, error) {
	var t models.Ticket
	err := db.Where("window_id = ? AND status IN ?", windowID, []models.Status{models.StatusCalled, models.StatusServing}).
		Order("called_at DESC").
		First(&t).Error
	if storage.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return &t, nil
}
