// Package notify fans queue state changes out to live displays.
package notify

import (
	"time"

	"turn_queue/internal/models"
)

// Channels a display can subscribe to.
const (
	ChannelTurns   = "turns"
	ChannelWindows = "windows"
	// ChannelAll receives every event.
	ChannelAll = "all"
)

const (
	EventTicketCreated      = "ticket-created"
	EventTicketUpdated      = "ticket-updated"
	EventQueueReset         = "queue-reset"
	EventWindowStateChanged = "window-state-changed"
	EventWindowBell         = "window-bell"
)

// Event is one message sent to subscribers. Data is marshalled as is.
type Event struct {
	Name    string `json:"event"`
	Channel string `json:"channel"`
	Data    any    `json:"data"`
}

// Publisher delivers events after the change they describe has committed.
// Implementations must not block the caller for long.
type Publisher interface {
	Publish(events ...Event)
}

type TicketCreatedPayload struct {
	ID        string        `json:"id"`
	Number    int           `json:"number"`
	Status    models.Status `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

type TicketUpdatedPayload struct {
	ID            string               `json:"id"`
	Number        int                  `json:"number"`
	Status        models.Status        `json:"status"`
	PriorityClass models.PriorityClass `json:"priorityClass"`
	WindowNumber  *int                 `json:"windowNumber,omitempty"`
	CalledAt      *time.Time           `json:"calledAt,omitempty"`
	ServedAt      *time.Time           `json:"servedAt,omitempty"`
	CompletedAt   *time.Time           `json:"completedAt,omitempty"`
	SkippedAt     *time.Time           `json:"skippedAt,omitempty"`
}

type WindowBellPayload struct {
	WindowNumber int  `json:"windowNumber"`
	TicketNumber *int `json:"ticketNumber,omitempty"`
}

func TicketCreated(t *models.Ticket) Event {
	return Event{
		Name:    EventTicketCreated,
		Channel: ChannelTurns,
		Data: TicketCreatedPayload{
			ID:        t.ID,
			Number:    t.Number,
			Status:    t.Status,
			CreatedAt: t.CreatedAt,
		},
	}
}

func TicketUpdated(t *models.Ticket) Event {
	return Event{
		Name:    EventTicketUpdated,
		Channel: ChannelTurns,
		Data: TicketUpdatedPayload{
			ID:            t.ID,
			Number:        t.Number,
			Status:        t.Status,
			PriorityClass: t.PriorityClass,
			WindowNumber:  t.WindowNumber,
			CalledAt:      t.CalledAt,
			ServedAt:      t.ServedAt,
			CompletedAt:   t.CompletedAt,
			SkippedAt:     t.SkippedAt,
		},
	}
}

func QueueReset() Event {
	return Event{Name: EventQueueReset, Channel: ChannelTurns, Data: struct{}{}}
}

func WindowStateChanged() Event {
	return Event{Name: EventWindowStateChanged, Channel: ChannelWindows, Data: struct{}{}}
}

func WindowBell(windowNumber int, ticketNumber *int) Event {
	return Event{
		Name:    EventWindowBell,
		Channel: ChannelWindows,
		Data:    WindowBellPayload{WindowNumber: windowNumber, TicketNumber: ticketNumber},
	}
}
