package rollover

import (
	"testing"
	"time"

	"turn_queue/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(base time.Time, sec int) *time.Time {
	t := base.Add(time.Duration(sec) * time.Second)
	return &t
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestProjectDurations(t *testing.T) {
	base := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	ticket := &models.Ticket{
		ID: "t1", ServiceDay: "2026-10-17", Number: 3, Status: models.StatusDone,
		PriorityClass: models.ClassStandard,
		CreatedAt:     base,
		CalledAt:      at(base, 90),
		ServedAt:      at(base, 100),
		CompletedAt:   at(base, 400),
		CalledBy:      strPtr("a"),
		CompletedBy:   strPtr("b"),
		WindowNumber:  intPtr(2),
	}

	f := Project(ticket, base.Add(time.Hour))
	assert.Equal(t, 90, *f.WaitToCallSec)
	assert.Equal(t, 10, *f.CallToServeSec)
	assert.Equal(t, 300, *f.ServeToCompleteSec)
	assert.Equal(t, 400, *f.TotalLeadTimeSec)
	assert.Equal(t, "b", *f.OperatorID)
	assert.Equal(t, models.StatusDone, f.FinalStatus)
	assert.Equal(t, "t1", f.TicketID)
}

func TestProjectMissingAndNegative(t *testing.T) {
	base := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	pending := Project(&models.Ticket{CreatedAt: base, Status: models.StatusPending}, base)
	assert.Nil(t, pending.WaitToCallSec)
	assert.Nil(t, pending.TotalLeadTimeSec)
	assert.Nil(t, pending.OperatorID)

	skipped := Project(&models.Ticket{
		CreatedAt: base, Status: models.StatusSkipped,
		CalledAt: at(base, -5), SkippedAt: at(base, 61),
	}, base)
	assert.Equal(t, 0, *skipped.WaitToCallSec, "clock skew clamps to zero")
	assert.Nil(t, skipped.CallToServeSec)
	assert.Equal(t, 0, *skipped.TotalLeadTimeSec, "lead time ends at the call, not the skip")

	noShow := Project(&models.Ticket{
		CreatedAt: base, Status: models.StatusSkipped,
		CalledAt: at(base, 300), SkippedAt: at(base, 360),
	}, base)
	assert.Equal(t, 300, *noShow.WaitToCallSec)
	assert.Equal(t, 300, *noShow.TotalLeadTimeSec)

	called := base.Add(1500 * time.Millisecond)
	partial := Project(&models.Ticket{CreatedAt: base, CalledAt: &called}, base)
	assert.Equal(t, 1, *partial.WaitToCallSec, "fractions truncate")
}

func TestAggregate(t *testing.T) {
	facts := []models.TicketFact{
		{OperatorID: strPtr("b"), FinalStatus: models.StatusDone, WaitToCallSec: intPtr(10), ServeToCompleteSec: intPtr(100), TotalLeadTimeSec: intPtr(120), WindowNumber: intPtr(3)},
		{OperatorID: strPtr("b"), FinalStatus: models.StatusDone, WaitToCallSec: intPtr(30), TotalLeadTimeSec: intPtr(60), WindowNumber: intPtr(1)},
		{OperatorID: strPtr("b"), FinalStatus: models.StatusSkipped, WaitToCallSec: intPtr(20), TotalLeadTimeSec: intPtr(30), WindowNumber: intPtr(2)},
		{OperatorID: strPtr("a"), FinalStatus: models.StatusSkipped, WaitToCallSec: intPtr(5)},
		{FinalStatus: models.StatusPending},
	}

	rows := Aggregate("2026-10-17", facts)
	require.Len(t, rows, 2)

	a := rows[0]
	assert.Equal(t, "a", a.OperatorID)
	assert.Equal(t, 0, a.ServedCount)
	assert.Equal(t, 5.0, *a.AvgWaitToCallSec)
	assert.Nil(t, a.AvgServeToCompleteSec)
	assert.Nil(t, a.WindowMin)

	b := rows[1]
	assert.Equal(t, "b", b.OperatorID)
	assert.Equal(t, "2026-10-17", b.ServiceDay)
	assert.Equal(t, 2, b.ServedCount)
	assert.Equal(t, 20.0, *b.AvgWaitToCallSec)
	assert.Equal(t, 100.0, *b.AvgServeToCompleteSec)
	assert.Equal(t, 70.0, *b.AvgTotalLeadTimeSec)
	assert.Equal(t, 1, *b.WindowMin)
	assert.Equal(t, 3, *b.WindowMax)
}
