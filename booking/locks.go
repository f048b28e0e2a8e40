package booking

import "sync"

// partitionLocks serializes admission and decision critical sections
// per (resourceID, date) partition. Locks are created on first use and
// kept for the process lifetime; the partition space is small enough
// that they are never reclaimed.
type partitionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newPartitionLocks() *partitionLocks {
	return &partitionLocks{locks: make(map[string]*sync.Mutex)}
}

func (p *partitionLocks) get(resourceID, date string) *sync.Mutex {
	key := resourceID + "\x00" + date
	p.mu.Lock()
	defer p.mu.Unlock()
	lock, ok := p.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		p.locks[key] = lock
	}
	return lock
}
