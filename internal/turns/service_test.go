package turns

import (
	"context"
	"sync"
	"testing"
	"time"

	"turn_queue/internal/apperr"
	"turn_queue/internal/clock"
	"turn_queue/internal/models"
	"turn_queue/internal/notify"
	"turn_queue/internal/storage"
	"turn_queue/internal/windows"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	clk     *clock.FakeClock
	rec     *notify.Recorder
	windows *windows.Manager
	svc     *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := storage.ConnectTestingDatabase()
	require.NoError(t, err)
	require.NoError(t, db.Create(&[]models.Window{
		{Number: 1, Active: true},
		{Number: 2, Active: true},
	}).Error)

	locks := storage.NewKeyLock()
	clk := clock.Fake(time.Date(2026, 10, 17, 14, 0, 0, 0, time.UTC))
	rec := notify.NewRecorder()
	mgr := windows.NewManager(db, windows.Options{Locks: locks, Clock: clk, Publisher: rec, Logger: zap.NewNop()})
	svc := NewService(db, mgr, Options{
		Locks:        locks,
		Clock:        clk,
		Location:     time.UTC,
		StartDefault: 1,
		Publisher:    rec,
		Logger:       zap.NewNop(),
	})
	return &fixture{db: db, clk: clk, rec: rec, windows: mgr, svc: svc}
}

func (f *fixture) create(t *testing.T, class models.PriorityClass) *models.Ticket {
	t.Helper()
	ticket, err := f.svc.CreateTicket(context.Background(), CreateRequest{PriorityClass: string(class)})
	require.NoError(t, err)
	f.clk.Advance(time.Second)
	return ticket
}

func (f *fixture) open(t *testing.T, user string, number int) {
	t.Helper()
	_, err := f.windows.OpenSession(context.Background(), user, number)
	require.NoError(t, err)
}

func TestCreateTicket(t *testing.T) {
	f := newFixture(t)

	ticket, err := f.svc.CreateTicket(context.Background(), CreateRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, ticket.Number)
	assert.Equal(t, models.StatusPending, ticket.Status)
	assert.Equal(t, models.ClassStandard, ticket.PriorityClass)
	assert.Equal(t, "2026-10-17", ticket.ServiceDay)

	events := f.rec.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notify.EventTicketCreated, events[0].Name)
	payload := events[0].Data.(notify.TicketCreatedPayload)
	assert.Equal(t, ticket.ID, payload.ID)
	assert.Equal(t, 1, payload.Number)

	_, err = f.svc.CreateTicket(context.Background(), CreateRequest{PriorityClass: "vip"})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidPriorityClass))
}

func TestTakeNextOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.open(t, "alice", 1)

	std1 := f.create(t, models.ClassStandard)
	f.create(t, models.ClassExempt)
	prio := f.create(t, models.ClassPriority)

	got, err := f.svc.TakeNext(ctx, "alice", 1, nil)
	require.NoError(t, err)
	assert.Equal(t, prio.ID, got.ID, "priority class goes first")
	assert.Equal(t, models.StatusCalled, got.Status)
	assert.Equal(t, 1, *got.WindowNumber)
	assert.Equal(t, "alice", *got.CalledBy)

	_, err = f.svc.Complete(ctx, "alice", 1, got.ID)
	require.NoError(t, err)

	got, err = f.svc.TakeNext(ctx, "alice", 1, nil)
	require.NoError(t, err)
	assert.Equal(t, std1.ID, got.ID, "same rank falls back to number order")
}

func TestTakeNextClassFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.open(t, "alice", 1)
	f.create(t, models.ClassStandard)
	exempt := f.create(t, models.ClassExempt)

	class := models.ClassExempt
	got, err := f.svc.TakeNext(ctx, "alice", 1, &class)
	require.NoError(t, err)
	assert.Equal(t, exempt.ID, got.ID)

	prio := models.ClassPriority
	_, err = f.svc.TakeNext(ctx, "alice", 1, &prio)
	assert.True(t, apperr.Is(err, apperr.CodeQueueEmpty))
}

func TestTakeNextEmitsCallEvents(t *testing.T) {
	f := newFixture(t)
	f.open(t, "alice", 2)
	ticket := f.create(t, models.ClassStandard)
	f.rec.Reset()

	_, err := f.svc.TakeNext(context.Background(), "alice", 2, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{notify.EventTicketUpdated, notify.EventWindowStateChanged, notify.EventWindowBell}, f.rec.Names())
	bell := f.rec.Events()[2].Data.(notify.WindowBellPayload)
	assert.Equal(t, 2, bell.WindowNumber)
	assert.Equal(t, ticket.Number, *bell.TicketNumber)
}

func TestTakeNextRequiresOwnership(t *testing.T) {
	f := newFixture(t)
	f.create(t, models.ClassStandard)

	_, err := f.svc.TakeNext(context.Background(), "alice", 1, nil)
	assert.True(t, apperr.Is(err, apperr.CodeNotWindowOwner))

	_, err = f.svc.TakeNext(context.Background(), "alice", 0, nil)
	assert.True(t, apperr.Is(err, apperr.CodeInvalidWindowNumber))

	var pending int64
	require.NoError(t, f.db.Model(&models.Ticket{}).Where("status = ?", models.StatusPending).Count(&pending).Error)
	assert.Equal(t, int64(1), pending, "a rejected call leaves the queue untouched")
}

func TestTicketLifecycleThroughService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.open(t, "alice", 1)
	f.open(t, "bob", 2)
	f.create(t, models.ClassStandard)

	called, err := f.svc.TakeNext(ctx, "alice", 1, nil)
	require.NoError(t, err)

	_, err = f.svc.MarkServing(ctx, "bob", 2, called.ID)
	assert.True(t, apperr.Is(err, apperr.CodeTicketOtherWindow))

	_, err = f.svc.MarkServing(ctx, "bob", 1, called.ID)
	assert.True(t, apperr.Is(err, apperr.CodeNotWindowOwner))

	f.clk.Advance(30 * time.Second)
	serving, err := f.svc.MarkServing(ctx, "alice", 1, called.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusServing, serving.Status)
	require.NotNil(t, serving.ServedAt)

	_, err = f.svc.MarkServing(ctx, "alice", 1, called.ID)
	assert.Equal(t, apperr.InvalidTransition, apperr.KindOf(err))

	f.clk.Advance(2 * time.Minute)
	done, err := f.svc.Complete(ctx, "alice", 1, called.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, done.Status)
	assert.Equal(t, "alice", *done.CompletedBy)

	_, err = f.svc.Skip(ctx, "alice", 1, called.ID)
	assert.Equal(t, apperr.InvalidTransition, apperr.KindOf(err))

	var stored models.Ticket
	require.NoError(t, f.db.First(&stored, "id = ?", called.ID).Error)
	assert.Equal(t, models.StatusDone, stored.Status)
	assert.False(t, stored.CompletedAt.Before(*stored.ServedAt))
	assert.False(t, stored.ServedAt.Before(*stored.CalledAt))
}

func TestSkipFromCalled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.open(t, "alice", 1)
	f.create(t, models.ClassStandard)

	called, err := f.svc.TakeNext(ctx, "alice", 1, nil)
	require.NoError(t, err)
	skipped, err := f.svc.Skip(ctx, "alice", 1, called.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSkipped, skipped.Status)
	assert.NotNil(t, skipped.SkippedAt)
}

func TestSkipWhileServingRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.open(t, "alice", 1)
	f.create(t, models.ClassStandard)

	called, err := f.svc.TakeNext(ctx, "alice", 1, nil)
	require.NoError(t, err)
	_, err = f.svc.MarkServing(ctx, "alice", 1, called.ID)
	require.NoError(t, err)

	_, err = f.svc.Skip(ctx, "alice", 1, called.ID)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.InvalidTransition, appErr.Kind)
	assert.Equal(t, "SERVING", appErr.From)
	assert.Equal(t, "SKIPPED", appErr.To)

	var stored models.Ticket
	require.NoError(t, f.db.First(&stored, "id = ?", called.ID).Error)
	assert.Equal(t, models.StatusServing, stored.Status)
	assert.Nil(t, stored.SkippedAt)
}

func TestActValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.open(t, "alice", 1)

	_, err := f.svc.Complete(ctx, "alice", 1, "not-a-uuid")
	assert.True(t, apperr.Is(err, apperr.CodeInvalidTicketID))

	_, err = f.svc.Complete(ctx, "alice", 1, uuid.NewString())
	assert.True(t, apperr.Is(err, apperr.CodeTicketNotFound))

	_, err = f.svc.Complete(ctx, "alice", -1, uuid.NewString())
	assert.True(t, apperr.Is(err, apperr.CodeInvalidWindowNumber))
}

func TestRecentAndPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		f.create(t, models.ClassStandard)
	}
	f.create(t, models.ClassExempt)
	f.create(t, models.ClassPriority)

	recent, err := f.svc.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 5, recent[0].Number)
	assert.Equal(t, 4, recent[1].Number)

	recent, err = f.svc.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 5)

	recent, err = f.svc.Recent(ctx, -3)
	require.NoError(t, err)
	assert.Len(t, recent, 1)

	internal, err := f.svc.Pending(ctx, nil, models.AudienceInternal)
	require.NoError(t, err)
	require.Len(t, internal, 5)
	assert.Equal(t, 5, internal[0].Number, "priority first")

	public, err := f.svc.Pending(ctx, nil, models.AudiencePublic)
	require.NoError(t, err)
	assert.Len(t, public, 4)
	for _, t2 := range public {
		assert.NotEqual(t, models.ClassExempt, t2.PriorityClass)
	}

	class := models.ClassStandard
	standard, err := f.svc.Pending(ctx, &class, models.AudienceInternal)
	require.NoError(t, err)
	assert.Len(t, standard, 3)
}

func TestConcurrentTakeNextNeverDoubleCalls(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.open(t, "alice", 1)
	f.open(t, "bob", 2)
	for i := 0; i < 10; i++ {
		f.create(t, models.ClassStandard)
	}

	var mu sync.Mutex
	seen := map[string]int{}
	var wg sync.WaitGroup
	for _, op := range []struct {
		user   string
		window int
	}{{"alice", 1}, {"bob", 2}} {
		wg.Add(1)
		go func(user string, window int) {
			defer wg.Done()
			for {
				ticket, err := f.svc.TakeNext(ctx, user, window, nil)
				if apperr.Is(err, apperr.CodeQueueEmpty) {
					return
				}
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				seen[ticket.ID]++
				mu.Unlock()
				_, err = f.svc.Complete(ctx, user, window, ticket.ID)
				assert.NoError(t, err)
			}
		}(op.user, op.window)
	}
	wg.Wait()

	assert.Len(t, seen, 10)
	for id, n := range seen {
		assert.Equal(t, 1, n, id)
	}
}
