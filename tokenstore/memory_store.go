// tokenstore/memory_store.go
package tokenstore

import "sync"

// MemoryStore keeps the session in process memory only. Useful when the disk cache is disabled.
type MemoryStore struct {
	mu      sync.Mutex
	session Session
}

// NewMemoryStore returns a MemoryStore, optionally seeded with a session.
func NewMemoryStore(seed ...Session) *MemoryStore {
	m := &MemoryStore{}
	if len(seed) > 0 {
		m.session = seed[0]
	}
	return m
}

// Load returns the held session if it is complete.
func (m *MemoryStore) Load() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.session.IsComplete() {
		return Session{}, false
	}
	return m.session, true
}

// Save replaces the held session.
func (m *MemoryStore) Save(session Session) error {
	if !session.IsComplete() {
		return ErrIncompleteSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = session
	return nil
}

