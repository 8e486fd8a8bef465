package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TicketFact is the archived, immutable projection of a ticket.
type TicketFact struct {
	ID            string        `gorm:"primaryKey;size:36" json:"id"`
	ServiceDay    string        `gorm:"size:10;not null;index" json:"serviceDay"`
	TicketID      string        `gorm:"size:36;not null;uniqueIndex" json:"ticketId"`
	Number        int           `gorm:"not null" json:"number"`
	PriorityClass PriorityClass `gorm:"size:20;not null" json:"priorityClass"`
	FinalStatus   Status        `gorm:"size:10;not null" json:"finalStatus"`
	WindowNumber  *int          `json:"windowNumber,omitempty"`
	OperatorID    *string       `gorm:"size:36;index" json:"operatorId,omitempty"`

	CreatedAt   time.Time  `gorm:"not null" json:"createdAt"`
	CalledAt    *time.Time `json:"calledAt,omitempty"`
	ServedAt    *time.Time `json:"servedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	SkippedAt   *time.Time `json:"skippedAt,omitempty"`

	WaitToCallSec      *int `json:"waitToCallSec"`
	CallToServeSec     *int `json:"callToServeSec"`
	ServeToCompleteSec *int `json:"serveToCompleteSec"`
	TotalLeadTimeSec   *int `json:"totalLeadTimeSec"`

	ArchivedAt time.Time `gorm:"not null" json:"archivedAt"`
}

func (f *TicketFact) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// OperatorDailyAggregate rolls up one operator's archived tickets for a day.
type OperatorDailyAggregate struct {
	ID                    string   `gorm:"primaryKey;size:36" json:"id"`
	ServiceDay            string   `gorm:"size:10;not null;uniqueIndex:idx_aggregate_day_operator" json:"serviceDay"`
	OperatorID            string   `gorm:"size:36;not null;uniqueIndex:idx_aggregate_day_operator" json:"operatorId"`
	ServedCount           int      `gorm:"not null" json:"servedCount"`
	AvgWaitToCallSec      *float64 `json:"avgWaitToCallSec"`
	AvgServeToCompleteSec *float64 `json:"avgServeToCompleteSec"`
	AvgTotalLeadTimeSec   *float64 `json:"avgTotalLeadTimeSec"`
	WindowMin             *int     `json:"windowMin"`
	WindowMax             *int     `json:"windowMax"`
}

func (a *OperatorDailyAggregate) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Both singleton tables keep their one row under this key.
const (
	SettingsID    = 1
	SystemStateID = 1
)

// Settings is the single admin-managed settings row.
type Settings struct {
	ID                 int  `gorm:"primaryKey"`
	StartNumberDefault *int `json:"startNumberDefault"`
}

// SystemState records the last completed rollover.
type SystemState struct {
	ID               int     `gorm:"primaryKey"`
	LastRolloverDay  *string `gorm:"size:10"`
	LastRolloverAt   *time.Time
	LastRolloverMode string `gorm:"size:10"`
}

// All lists every model for migration.
func All() []any {
	return []any{
		&DayCounter{},
		&Ticket{},
		&Window{},
		&WorkerSession{},
		&TicketFact{},
		&OperatorDailyAggregate{},
		&Settings{},
		&SystemState{},
	}
}
