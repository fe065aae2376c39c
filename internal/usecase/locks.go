package usecase

import "sync"

// roundLocks serialises read-modify-write cycles per round ID within one
// process. Entries are dropped once no caller holds or waits on them.
type roundLocks struct {
	mu    sync.Mutex
	locks map[string]*roundLock
}

type roundLock struct {
	mu   sync.Mutex
	refs int
}

// lock blocks until id is free and returns its release func.
func (l *roundLocks) lock(id string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = map[string]*roundLock{}
	}
	e, ok := l.locks[id]
	if !ok {
		e = &roundLock{}
		l.locks[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
