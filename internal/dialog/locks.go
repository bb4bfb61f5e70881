package dialog

import "sync"

// userLocks serializes the get-decide-upsert cycle per user so a retrying
// transport cannot interleave two messages from the same sender. Different
// users never contend.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the mutex for userID and returns its unlock func.
func (l *userLocks) acquire(userID string) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
