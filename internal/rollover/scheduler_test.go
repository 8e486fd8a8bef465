package rollover

import (
	"context"
	"testing"
	"time"

	"turn_queue/internal/clock"
	"turn_queue/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryGuardCooldown(t *testing.T) {
	clk := clock.Fake(time.Date(2026, 10, 17, 23, 59, 0, 0, time.UTC))
	g := NewMemoryGuard(clk)
	ctx := context.Background()

	ok, err := g.Acquire(ctx, "k", 2*time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = g.Acquire(ctx, "k", 2*time.Minute)
	assert.False(t, ok)

	ok, _ = g.Acquire(ctx, "other", 2*time.Minute)
	assert.True(t, ok)

	clk.Advance(2 * time.Minute)
	ok, _ = g.Acquire(ctx, "k", 2*time.Minute)
	assert.True(t, ok)
}

func TestRedisGuardCooldown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	g := NewRedisGuard(client, "turns:")
	ctx := context.Background()

	ok, err := g.Acquire(ctx, "rollover", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.Acquire(ctx, "rollover", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(61 * time.Second)
	ok, err = g.Acquire(ctx, "rollover", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSchedulerNext(t *testing.T) {
	f := newFixture(t)
	s, err := NewScheduler(f.coord, nil, "23:59", panama, 2*time.Minute, zap.NewNop())
	require.NoError(t, err)

	next := s.Next(time.Date(2026, 10, 17, 10, 0, 0, 0, panama))
	assert.True(t, next.Equal(time.Date(2026, 10, 17, 23, 59, 0, 0, panama)))

	next = s.Next(time.Date(2026, 10, 18, 4, 59, 30, 0, time.UTC))
	assert.True(t, next.Equal(time.Date(2026, 10, 18, 23, 59, 0, 0, panama)), "23:59:30 local already passed")

	_, err = NewScheduler(f.coord, nil, "25:00", panama, time.Minute, nil)
	assert.Error(t, err)
}

func TestSchedulerFireSuppressesDuplicates(t *testing.T) {
	f := newFixture(t)
	f.seedDay(t)
	s, err := NewScheduler(f.coord, NewMemoryGuard(f.clk), "23:59", panama, 2*time.Minute, zap.NewNop())
	require.NoError(t, err)

	res, err := s.Fire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2026-10-17", res.ServiceDay)
	assert.Equal(t, 3, res.Archived)

	_, err = s.Fire(context.Background())
	assert.ErrorIs(t, err, ErrCooldown)
}

func TestSchedulerFireCatchesUpFirst(t *testing.T) {
	f := newFixture(t)
	now := f.clk.Now()
	require.NoError(t, f.db.Create(&models.Ticket{ServiceDay: "2026-10-16", Number: 4, Status: models.StatusPending, CreatedAt: now}).Error)

	s, err := NewScheduler(f.coord, nil, "23:59", panama, 2*time.Minute, zap.NewNop())
	require.NoError(t, err)
	_, err = s.Fire(context.Background())
	require.NoError(t, err)

	var facts int64
	require.NoError(t, f.db.Model(&models.TicketFact{}).Where("service_day = ?", "2026-10-16").Count(&facts).Error)
	assert.Equal(t, int64(1), facts)
}

func TestSchedulerStartStop(t *testing.T) {
	f := newFixture(t)
	s, err := NewScheduler(f.coord, nil, "23:59", panama, time.Minute, zap.NewNop())
	require.NoError(t, err)
	s.Start(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
