package indexer

import "sync"

// keyedMutex provides per-key mutual exclusion. it's used to serialize
// index operations targeting the same page while allowing operations on
// different pages to proceed in parallel. Lock entries are reference
// counted and removed once the last holder releases them.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{
		locks: make(map[string]*lockEntry),
	}
}

// lock acquires the mutex for the specified key, blocking while another
// caller holds it. The returned function releases the mutex.
func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()

	entry, exists := k.locks[key]
	if !exists {
		entry = new(lockEntry)
		k.locks[key] = entry
	}
	entry.refs++

	k.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		k.mu.Lock()

		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, key)
		}

		k.mu.Unlock()
	}
}
