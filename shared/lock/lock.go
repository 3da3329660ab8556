package lock

import "sync"

// Keyed serializes critical sections per key. The booking write path locks the
// target room id around its conflict-check-then-write sequence; writers on
// different rooms do not contend.
//
// Mutexes are retained for the lifetime of the process. The key space is the
// set of room ids, which is small and bounded, so no eviction is done.
type Keyed struct {
	locks sync.Map
}

// Lock acquires the mutex for key and returns the corresponding unlock func.
//
//	unlock := locks.Lock(roomID)
//	defer unlock()
func (k *Keyed) Lock(key int64) func() {
	value, _ := k.locks.LoadOrStore(key, &sync.Mutex{})
	mu, _ := value.(*sync.Mutex)
	mu.Lock()

	return mu.Unlock
}
