package turns

import (
	"context"

	"turn_queue/internal/apperr"
	"turn_queue/internal/models"
	"turn_queue/internal/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Allocator hands out gap-free, strictly increasing ticket numbers per
// service day.
type Allocator struct {
	db           *gorm.DB
	locks        *storage.KeyLock
	startDefault int
}

func NewAllocator(db *gorm.DB, locks *storage.KeyLock, startDefault int) *Allocator {
	if locks == nil {
		locks = storage.NewKeyLock()
	}
	return &Allocator{db: db, locks: locks, startDefault: startDefault}
}

// AllocateNext reserves the next number for day. A positive override raises
// the counter when it is ahead of it and is ignored otherwise.
func (a *Allocator) AllocateNext(ctx context.Context, day string, override *int) (int, error) {
	if err := validateOverride(override); err != nil {
		return 0, err
	}
	unlock := a.locks.Lock(storage.DayKey(day))
	defer unlock()

	var n int
	err := storage.WithTx(ctx, a.db, func(tx *gorm.DB) error {
		var err error
		n, err = a.allocate(tx, day, override)
		return err
	})
	return n, err
}

// allocate runs inside the caller's transaction; the caller holds the day lock.
func (a *Allocator) allocate(tx *gorm.DB, day string, override *int) (int, error) {
	start, err := StartValue(tx, a.startDefault)
	if err != nil {
		return 0, err
	}

	seed := models.DayCounter{ServiceDay: day, NextNumber: start}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return 0, apperr.Storage(err)
	}

	var counter models.DayCounter
	if err := tx.Scopes(storage.ForUpdate).Where("service_day = ?", day).First(&counter).Error; err != nil {
		return 0, apperr.Storage(err)
	}

	n := counter.NextNumber
	if override != nil && *override > n {
		n = *override
	}
	if err := tx.Model(&models.DayCounter{}).
		Where("service_day = ?", day).
		Update("next_number", n+1).Error; err != nil {
		return 0, apperr.Storage(err)
	}
	return n, nil
}

// StartValue is the number a fresh day begins at: the stored setting when
// present, else fallback.
func StartValue(tx *gorm.DB, fallback int) (int, error) {
	var settings models.Settings
	err := tx.Where("id = ?", models.SettingsID).Limit(1).Find(&settings).Error
	if err != nil {
		return 0, apperr.Storage(err)
	}
	if settings.StartNumberDefault != nil {
		return *settings.StartNumberDefault, nil
	}
	return fallback, nil
}

func validateOverride(override *int) error {
	if override != nil && *override <= 0 {
		return apperr.Invalid(apperr.CodeInvalidStartOverride, "start override must be positive")
	}
	return nil
}
