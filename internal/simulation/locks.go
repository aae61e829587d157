package simulation

import "sync"

// advanceLocks serializes progression per simulation. Two concurrent
// Advance calls for the same simulation would otherwise both read
// completedTasks = N and both write N+1, silently losing a turn
// (duplicate tab, double-click, retry after timeout).
type advanceLocks struct {
	mu    sync.Mutex
	locks map[string]*simLock
}

type simLock struct {
	mu   sync.Mutex
	refs int
}

func newAdvanceLocks() *advanceLocks {
	return &advanceLocks{locks: make(map[string]*simLock)}
}

// acquire blocks until the caller holds the lock for simulationID and
// returns the release func. Entries are refcounted so the map does not
// grow with every simulation ever touched.
func (a *advanceLocks) acquire(simulationID string) func() {
	a.mu.Lock()
	l, ok := a.locks[simulationID]
	if !ok {
		l = &simLock{}
		a.locks[simulationID] = l
	}
	l.refs++
	a.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		a.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(a.locks, simulationID)
		}
		a.mu.Unlock()
	}
}
