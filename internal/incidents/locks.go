package incidents

import "sync"

// incidentLocks serializes mutating commands per incident so two concurrent
// transitions cannot race past the permitted-edge check. Independent
// incidents are fully parallel; there is no cross-incident locking.
type incidentLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newIncidentLocks() *incidentLocks {
	return &incidentLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given incident id, creating it on first
// use. The returned function releases the lock.
func (l *incidentLocks) Lock(id string) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
