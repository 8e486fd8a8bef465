package rollover

import (
	"sort"
	"time"

	"turn_queue/internal/models"
)

// Project freezes a ticket into its archived fact. Durations are whole
// seconds, never negative, and absent when either endpoint is missing.
func Project(t *models.Ticket, archivedAt time.Time) models.TicketFact {
	return models.TicketFact{
		ServiceDay:         t.ServiceDay,
		TicketID:           t.ID,
		Number:             t.Number,
		PriorityClass:      t.PriorityClass,
		FinalStatus:        t.Status,
		WindowNumber:       t.WindowNumber,
		OperatorID:         t.Operator(),
		CreatedAt:          t.CreatedAt,
		CalledAt:           t.CalledAt,
		ServedAt:           t.ServedAt,
		CompletedAt:        t.CompletedAt,
		SkippedAt:          t.SkippedAt,
		WaitToCallSec:      seconds(&t.CreatedAt, t.CalledAt),
		CallToServeSec:     seconds(t.CalledAt, t.ServedAt),
		ServeToCompleteSec: seconds(t.ServedAt, t.CompletedAt),
		TotalLeadTimeSec:   seconds(&t.CreatedAt, leadEnd(t)),
		ArchivedAt:         archivedAt,
	}
}

// leadEnd is the last moment the ticket was handled by an operator. A skip
// is not handling, so a skipped ticket's lead time ends when it was called.
func leadEnd(t *models.Ticket) *time.Time {
	for _, ts := range []*time.Time{t.CompletedAt, t.ServedAt, t.CalledAt} {
		if ts != nil {
			return ts
		}
	}
	return nil
}

func seconds(from, to *time.Time) *int {
	if from == nil || to == nil {
		return nil
	}
	d := int(to.Sub(*from) / time.Second)
	if d < 0 {
		d = 0
	}
	return &d
}

type mean struct {
	sum   int
	count int
}

func (m *mean) add(v *int) {
	if v != nil {
		m.sum += *v
		m.count++
	}
}

func (m mean) value() *float64 {
	if m.count == 0 {
		return nil
	}
	v := float64(m.sum) / float64(m.count)
	return &v
}

type operatorAcc struct {
	served                      int
	waitToCall, serveToComplete mean
	totalLead                   mean
	windowMin, windowMax        *int
}

// Aggregate rolls a day's facts up per operator, ordered by operator id.
// Facts without an operator are left out.
func Aggregate(day string, facts []models.TicketFact) []models.OperatorDailyAggregate {
	acc := map[string]*operatorAcc{}
	for i := range facts {
		f := &facts[i]
		if f.OperatorID == nil {
			continue
		}
		a, ok := acc[*f.OperatorID]
		if !ok {
			a = &operatorAcc{}
			acc[*f.OperatorID] = a
		}
		if f.FinalStatus == models.StatusDone {
			a.served++
		}
		a.waitToCall.add(f.WaitToCallSec)
		a.serveToComplete.add(f.ServeToCompleteSec)
		a.totalLead.add(f.TotalLeadTimeSec)
		if w := f.WindowNumber; w != nil {
			if a.windowMin == nil || *w < *a.windowMin {
				v := *w
				a.windowMin = &v
			}
			if a.windowMax == nil || *w > *a.windowMax {
				v := *w
				a.windowMax = &v
			}
		}
	}

	ids := make([]string, 0, len(acc))
	for id := range acc {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]models.OperatorDailyAggregate, 0, len(ids))
	for _, id := range ids {
		a := acc[id]
		out = append(out, models.OperatorDailyAggregate{
			ServiceDay:            day,
			OperatorID:            id,
			ServedCount:           a.served,
			AvgWaitToCallSec:      a.waitToCall.value(),
			AvgServeToCompleteSec: a.serveToComplete.value(),
			AvgTotalLeadTimeSec:   a.totalLead.value(),
			WindowMin:             a.windowMin,
			WindowMax:             a.windowMax,
		})
	}
	return out
}
