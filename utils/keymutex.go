package utils

import "sync"

// KeyedMutex provides per-key exclusive locking. The booking engine
// serializes transitions per booking ID with it, and the stats
// aggregator serializes derived-stat writes per provider ID.
//
// Lock entries are created on demand and never removed; the key space
// is bounded by live entity IDs, which is acceptable for a single
// process.
type KeyedMutex struct {
	locks sync.Map // key -> *sync.Mutex
}

// NewKeyedMutex returns an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{}
}

// Lock acquires the mutex for key, blocking until it is available.
func (m *KeyedMutex) Lock(key string) {
	mu, _ := m.locks.LoadOrStore(key, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
}

// Unlock releases the mutex for key. It panics if the key was never
// locked, same as an unlocked sync.Mutex would.
func (m *KeyedMutex) Unlock(key string) {
	mu, ok := m.locks.Load(key)
	if !ok {
		panic("keymutex: unlock of unheld key " + key)
	}
	mu.(*sync.Mutex).Unlock()
}
