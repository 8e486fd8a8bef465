package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Window is a service desk. Records are managed by the admin surface;
// the queue only reads them.
type Window struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	Number int    `gorm:"not null;uniqueIndex" json:"number"`
	Active bool   `gorm:"not null" json:"active"`
}

func (w *Window) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

type SessionMode string

const (
	SessionAssigner SessionMode = "ASSIGNER"
	SessionWindow   SessionMode = "WINDOW"
)

// WorkerSession binds an operator to a window for [StartedAt, EndedAt).
// The partial unique indexes keep at most one open session per user and
// per window.
type WorkerSession struct {
	ID           string      `gorm:"primaryKey;size:36" json:"id"`
	UserID       string      `gorm:"size:36;not null;index;uniqueIndex:idx_open_session_user,where:ended_at IS NULL" json:"userId"`
	Mode         SessionMode `gorm:"size:10;not null" json:"mode"`
	WindowID     *string     `gorm:"size:36;uniqueIndex:idx_open_session_window,where:ended_at IS NULL" json:"-"`
	WindowNumber *int        `json:"windowNumber,omitempty"`
	StartedAt    time.Time   `gorm:"not null" json:"startedAt"`
	EndedAt      *time.Time  `gorm:"index" json:"endedAt,omitempty"`
}

func (s *WorkerSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
