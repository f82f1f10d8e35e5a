package store

import "sync"

// KeyLocks provides per-key mutual exclusion for load-mutate-save
// sequences. Operations on different keys proceed independently; the
// loan and credit engines share one instance so all mutations for a
// given user serialise together.
type KeyLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyLocks creates an empty lock table.
func NewKeyLocks() *KeyLocks {
	return &KeyLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns the matching unlock
// function. Lock entries are never removed; the table is bounded by the
// number of distinct users and guilds seen.
func (l *KeyLocks) Lock(key string) func() {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
