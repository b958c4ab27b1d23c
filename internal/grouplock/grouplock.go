package grouplock

import "sync"

// Keyed hands out one mutex per group so every write that touches a group's
// roster or ledger runs in the same critical section, regardless of which
// domain service issues it.
type Keyed struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New() *Keyed {
	return &Keyed{locks: make(map[string]*sync.Mutex)}
}

// Lock blocks until the group's mutex is held and returns the unlock func.
func (k *Keyed) Lock(groupID string) func() {
	k.mu.Lock()
	lock, ok := k.locks[groupID]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[groupID] = lock
	}
	k.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
