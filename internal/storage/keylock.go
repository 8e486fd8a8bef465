package storage

import (
	"sort"
	"strconv"
	"sync"
)

// Key names a resource that must be mutated by one goroutine at a time.
// Keys are always acquired in (rank, id) order, which rules out lock-order
// deadlocks between operations that need several of them.
type Key struct {
	rank int
	id   string
}

func DayKey(day string) Key         { return Key{rank: 0, id: day} }
func QueueKey() Key                 { return Key{rank: 1, id: "pending"} }
func UserKey(userID string) Key     { return Key{rank: 2, id: userID} }
func WindowKey(number int) Key      { return Key{rank: 3, id: strconv.Itoa(number)} }
func TicketKey(ticketID string) Key { return Key{rank: 4, id: ticketID} }

type keyEntry struct {
	mu   sync.Mutex
	refs int
}

// KeyLock serializes in-process access per natural key. A gate in front of
// every key lets the rollover take the whole store exclusively.
type KeyLock struct {
	gate sync.RWMutex

	mu      sync.Mutex
	entries map[Key]*keyEntry
}

func NewKeyLock() *KeyLock {
	return &KeyLock{entries: make(map[Key]*keyEntry)}
}

// Lock acquires every key and returns the function releasing them. Calls
// must not be nested: take all keys an operation needs in one call.
func (l *KeyLock) Lock(keys ...Key) (unlock func()) {
	l.gate.RLock()

	ordered := dedupe(keys)
	held := make([]*keyEntry, 0, len(ordered))
	for _, k := range ordered {
		e := l.acquire(k)
		e.mu.Lock()
		held = append(held, e)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()
			l.release(ordered[i])
		}
		l.gate.RUnlock()
	}
}

// LockAll waits for in-flight keyed operations to drain and blocks new ones.
func (l *KeyLock) LockAll() (unlock func()) {
	l.gate.Lock()
	return l.gate.Unlock
}

// Size reports how many keys are currently tracked.
func (l *KeyLock) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *KeyLock) acquire(k Key) *keyEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[k]
	if !ok {
		e = &keyEntry{}
		l.entries[k] = e
	}
	e.refs++
	return e
}

func (l *KeyLock) release(k Key) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.entries[k]
	e.refs--
	if e.refs == 0 {
		delete(l.entries, k)
	}
}

func dedupe(keys []Key) []Key {
	seen := make(map[Key]bool, len(keys))
	out := make([]Key, 0, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].rank != out[j].rank {
			return out[i].rank < out[j].rank
		}
		return out[i].id < out[j].id
	})
	return out
}
