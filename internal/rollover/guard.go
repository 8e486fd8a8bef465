package rollover

import (
	"context"
	"sync"
	"time"

	"turn_queue/internal/clock"

	"github.com/go-redis/redis/v8"
)

// Guard hands out a key at most once per ttl. The scheduler uses it so that
// a duplicate firing, on this instance or another, does not reset twice.
type Guard interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

type MemoryGuard struct {
	mu    sync.Mutex
	clock clock.Clock
	until map[string]time.Time
}

func NewMemoryGuard(clk clock.Clock) *MemoryGuard {
	if clk == nil {
		clk = clock.Real()
	}
	return &MemoryGuard{clock: clk, until: make(map[string]time.Time)}
}

func (g *MemoryGuard) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.clock.Now()
	for k, t := range g.until {
		if !now.Before(t) {
			delete(g.until, k)
		}
	}
	if _, held := g.until[key]; held {
		return false, nil
	}
	g.until[key] = now.Add(ttl)
	return true, nil
}

// RedisGuard shares the cooldown between instances with SET NX.
type RedisGuard struct {
	client *redis.Client
	prefix string
}

func NewRedisGuard(client *redis.Client, prefix string) *RedisGuard {
	return &RedisGuard{client: client, prefix: prefix}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return g.client.SetNX(ctx, g.prefix+key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
}
