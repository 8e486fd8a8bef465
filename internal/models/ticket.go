package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the lifecycle state of a ticket.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusCalled  Status = "CALLED"
	StatusServing Status = "SERVING"
	StatusDone    Status = "DONE"
	StatusSkipped Status = "SKIPPED"
)

func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusSkipped
}

// DayCounter holds the next number to hand out for one service day.
type DayCounter struct {
	ServiceDay string `gorm:"primaryKey;size:10"`
	NextNumber int    `gorm:"not null"`
}

// Ticket is one visitor's queue entry for a service day.
type Ticket struct {
	ID            string        `gorm:"primaryKey;size:36" json:"id"`
	ServiceDay    string        `gorm:"size:10;not null;uniqueIndex:idx_ticket_day_number" json:"serviceDay"`
	Number        int           `gorm:"not null;uniqueIndex:idx_ticket_day_number" json:"number"`
	PriorityClass PriorityClass `gorm:"size:20;not null;index" json:"priorityClass"`
	Status        Status        `gorm:"size:10;not null;index" json:"status"`

	WindowID     *string `gorm:"size:36;index" json:"-"`
	WindowNumber *int    `json:"windowNumber,omitempty"`

	CreatedAt   time.Time  `gorm:"not null;index" json:"createdAt"`
	CalledAt    *time.Time `json:"calledAt,omitempty"`
	ServedAt    *time.Time `json:"servedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	SkippedAt   *time.Time `json:"skippedAt,omitempty"`

	CalledBy    *string `gorm:"size:36" json:"calledBy,omitempty"`
	ServedBy    *string `gorm:"size:36" json:"servedBy,omitempty"`
	CompletedBy *string `gorm:"size:36" json:"completedBy,omitempty"`
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	if t.PriorityClass == "" {
		t.PriorityClass = ClassStandard
	}
	return nil
}

// Operator returns the user credited with the ticket: whoever completed it,
// else whoever served it, else whoever called it.
func (t *Ticket) Operator() *string {
	switch {
	case t.CompletedBy != nil:
		return t.CompletedBy
	case t.ServedBy != nil:
		return t.ServedBy
	default:
		return t.CalledBy
	}
}
