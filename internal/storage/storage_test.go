package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"turn_queue/internal/apperr"
	"turn_queue/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestKeyLockSerializesSameKey(t *testing.T) {
	l := NewKeyLock()
	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock(WindowKey(3))
			defer unlock()
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxInside)
	assert.Equal(t, 0, l.Size())
}

func TestKeyLockOppositeOrderDoesNotDeadlock(t *testing.T) {
	l := NewKeyLock()
	done := make(chan struct{})
	go func() {
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				l.Lock(WindowKey(1), WindowKey(2), UserKey("a"))()
			}()
			go func() {
				defer wg.Done()
				l.Lock(UserKey("a"), WindowKey(2), WindowKey(1))()
			}()
		}
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("lock ordering deadlocked")
	}
}

func TestKeyLockAllExcludesKeyedWork(t *testing.T) {
	l := NewKeyLock()
	unlockAll := l.LockAll()

	acquired := make(chan struct{})
	go func() {
		unlock := l.Lock(DayKey("2026-10-17"))
		close(acquired)
		unlock()
	}()

	select {
	case <-acquired:
		t.Fatal("keyed lock acquired while gate was held exclusively")
	case <-time.After(50 * time.Millisecond):
	}
	unlockAll()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("keyed lock never acquired after gate release")
	}
}

func TestDedupeOrdersByRankThenID(t *testing.T) {
	got := dedupe([]Key{TicketKey("x"), WindowKey(2), DayKey("d"), WindowKey(10), WindowKey(2)})
	require.Len(t, got, 4)
	assert.Equal(t, DayKey("d"), got[0])
	assert.Equal(t, WindowKey(10), got[1])
	assert.Equal(t, WindowKey(2), got[2])
	assert.Equal(t, TicketKey("x"), got[3])
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, IsSerializationFailure(&pgconn.PgError{Code: "40001"}))
	assert.True(t, IsSerializationFailure(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "40P01"})))
	assert.False(t, IsSerializationFailure(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsSerializationFailure(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.False(t, IsSerializationFailure(errors.New("boom")))

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db, err := ConnectTestingDatabase()
	require.NoError(t, err)

	failure := apperr.Invalid(apperr.CodeInvalidWindowNumber, "bad window")
	err = WithTx(context.Background(), db, func(tx *gorm.DB) error {
		if err := tx.Create(&models.Window{Number: 1, Active: true}).Error; err != nil {
			return err
		}
		return failure
	})
	assert.ErrorIs(t, err, failure)

	var count int64
	require.NoError(t, db.Model(&models.Window{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWithTxRetriesSerializationFailure(t *testing.T) {
	db, err := ConnectTestingDatabase()
	require.NoError(t, err)

	attempts := 0
	err = WithTx(context.Background(), db, func(tx *gorm.DB) error {
		attempts++
		if attempts < 3 {
			return &pgconn.PgError{Code: "40001"}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)

	err = WithTx(context.Background(), db, func(tx *gorm.DB) error {
		return &pgconn.PgError{Code: "40001"}
	})
	assert.Equal(t, apperr.RaceLost, apperr.KindOf(err))
}

func TestOpenSessionIndexesAreEnforced(t *testing.T) {
	db, err := ConnectTestingDatabase()
	require.NoError(t, err)

	win := models.Window{Number: 1, Active: true}
	require.NoError(t, db.Create(&win).Error)
	n := 1

	open := models.WorkerSession{UserID: "u1", Mode: models.SessionWindow, WindowID: &win.ID, WindowNumber: &n, StartedAt: time.Now()}
	require.NoError(t, db.Create(&open).Error)

	second := models.WorkerSession{UserID: "u2", Mode: models.SessionWindow, WindowID: &win.ID, WindowNumber: &n, StartedAt: time.Now()}
	err = db.Create(&second).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	ended := time.Now()
	require.NoError(t, db.Model(&open).Update("ended_at", ended).Error)
	require.NoError(t, db.Create(&second).Error)
}

func TestGormLogsThroughZapWithoutMisses(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	db, err := open(sqlite.Open(":memory:"), zap.New(core))
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	logs.TakeAll()

	var session models.WorkerSession
	err = db.Where("user_id = ?", "nobody").First(&session).Error
	assert.True(t, IsNotFound(err))
	assert.Zero(t, logs.Len(), "a miss is not worth a log line")

	err = db.Exec("SELECT * FROM no_such_table").Error
	require.Error(t, err)
	entries := logs.FilterLoggerName("gorm").All()
	require.NotEmpty(t, entries)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}
