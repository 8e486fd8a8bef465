package turns

import (
	"context"
	"sort"
	"sync"
	"testing"

	"turn_queue/internal/apperr"
	"turn_queue/internal/models"
	"turn_queue/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestAllocateNextSequence(t *testing.T) {
	db, err := storage.ConnectTestingDatabase()
	require.NoError(t, err)
	a := NewAllocator(db, nil, 1)
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		n, err := a.AllocateNext(ctx, "2026-10-17", nil)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	n, err := a.AllocateNext(ctx, "2026-10-18", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "each day has its own counter")
}

func TestAllocateNextOverride(t *testing.T) {
	db, err := storage.ConnectTestingDatabase()
	require.NoError(t, err)
	a := NewAllocator(db, nil, 1)
	ctx := context.Background()
	day := "2026-10-17"

	n, err := a.AllocateNext(ctx, day, intPtr(100))
	require.NoError(t, err)
	assert.Equal(t, 100, n)

	n, err = a.AllocateNext(ctx, day, intPtr(5))
	require.NoError(t, err)
	assert.Equal(t, 101, n, "an override behind the counter is ignored")

	n, err = a.AllocateNext(ctx, day, nil)
	require.NoError(t, err)
	assert.Equal(t, 102, n)

	_, err = a.AllocateNext(ctx, day, intPtr(0))
	assert.True(t, apperr.Is(err, apperr.CodeInvalidStartOverride))
}

func TestAllocateNextUsesStoredStart(t *testing.T) {
	db, err := storage.ConnectTestingDatabase()
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Settings{ID: models.SettingsID, StartNumberDefault: intPtr(500)}).Error)

	a := NewAllocator(db, nil, 1)
	n, err := a.AllocateNext(context.Background(), "2026-10-17", nil)
	require.NoError(t, err)
	assert.Equal(t, 500, n)
}

func TestAllocateNextConcurrentIsGapFree(t *testing.T) {
	db, err := storage.ConnectTestingDatabase()
	require.NoError(t, err)
	a := NewAllocator(db, nil, 1)

	const workers = 40
	got := make([]int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			n, err := a.AllocateNext(context.Background(), "2026-10-17", nil)
			assert.NoError(t, err)
			got[i] = n
		}(i)
	}
	wg.Wait()

	sort.Ints(got)
	for i, n := range got {
		assert.Equal(t, i+1, n)
	}
}
