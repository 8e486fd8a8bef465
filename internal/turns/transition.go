package turns

import (
	"time"

	"turn_queue/internal/apperr"
	"turn_queue/internal/models"
)

// Action is an operator command applied to a ticket.
type Action string

const (
	ActionCall     Action = "call"
	ActionServe    Action = "serve"
	ActionComplete Action = "complete"
	ActionSkip     Action = "skip"
)

// Target is the status a ticket lands in after a.
func (a Action) Target() models.Status {
	switch a {
	case ActionCall:
		return models.StatusCalled
	case ActionServe:
		return models.StatusServing
	case ActionComplete:
		return models.StatusDone
	case ActionSkip:
		return models.StatusSkipped
	}
	return ""
}

var allowed = map[models.Status]map[Action]bool{
	models.StatusPending: {ActionCall: true},
	models.StatusCalled:  {ActionServe: true, ActionComplete: true, ActionSkip: true},
	models.StatusServing: {ActionComplete: true},
}

// CanApply reports whether a is legal from status.
func CanApply(status models.Status, a Action) bool {
	return allowed[status][a]
}

// Apply moves t through a on behalf of operatorID at window win. Calling
// binds the ticket to win; every later action must come from that same
// window. Timestamps never go backwards: now is raised to the latest
// timestamp already on the ticket.
func Apply(t *models.Ticket, a Action, win *models.Window, operatorID string, now time.Time) error {
	if !CanApply(t.Status, a) {
		return apperr.Transition(string(t.Status), string(a.Target()))
	}
	if a != ActionCall && (t.WindowID == nil || *t.WindowID != win.ID) {
		return apperr.Denied(apperr.CodeTicketOtherWindow, "ticket is assigned to another window")
	}

	now = notBefore(now.UTC(), t)
	op := operatorID
	switch a {
	case ActionCall:
		id, number := win.ID, win.Number
		t.WindowID = &id
		t.WindowNumber = &number
		t.CalledAt = &now
		t.CalledBy = &op
	case ActionServe:
		t.ServedAt = &now
		t.ServedBy = &op
	case ActionComplete:
		t.CompletedAt = &now
		t.CompletedBy = &op
	case ActionSkip:
		t.SkippedAt = &now
	}
	t.Status = a.Target()
	return nil
}

func notBefore(now time.Time, t *models.Ticket) time.Time {
	latest := t.CreatedAt
	for _, ts := range []*time.Time{t.CalledAt, t.ServedAt, t.CompletedAt, t.SkippedAt} {
		if ts != nil && ts.After(latest) {
			latest = *ts
		}
	}
	if now.Before(latest) {
		return latest.UTC()
	}
	return now
}
