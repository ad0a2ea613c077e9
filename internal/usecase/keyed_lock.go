package usecase

import "sync"

// keyedLock provides per-asset-id mutual exclusion. Update and Delete hold
// the id's lock for their whole blob/metadata sequence so the two cannot
// interleave on the same asset. Entries are reference counted and removed
// when the last holder releases, so the map does not grow with the id space.
type keyedLock struct {
	mu    sync.Mutex
	locks map[int64]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLock() *keyedLock {
	return &keyedLock{locks: make(map[int64]*lockEntry)}
}

func (l *keyedLock) Lock(id int64) {
	l.mu.Lock()
	e, ok := l.locks[id]
	if !ok {
		e = &lockEntry{}
		l.locks[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
}

func (l *keyedLock) Unlock(id int64) {
	l.mu.Lock()
	e, ok := l.locks[id]
	if ok {
		e.refs--
		if e.refs == 0 {
			delete(l.locks, id)
		}
	}
	l.mu.Unlock()

	if ok {
		e.mu.Unlock()
	}
}
