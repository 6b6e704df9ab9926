package progression

import (
	"sync"
)

// LockManager hands out one mutex per player id.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager.
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for playerID, creating it on first use.
func (lm *LockManager) GetLock(playerID int64) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(playerID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
