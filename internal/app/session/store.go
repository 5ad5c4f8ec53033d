package session

import (
	"errors"
	"sync"
)

var ErrSessionNotFound = errors.New("session: not found")

// Store keeps the live sessions in memory. Drafts are deliberately not
// persisted: a session dies with the process, the remote API owns durable
// bookings.
type Store struct {
	mu    sync.RWMutex
	items map[string]*Session
}

// NewStore builds an empty store.
func NewStore() *Store {
	return &Store{items: make(map[string]*Session)}
}

// Put registers a session.
func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.items[s.ID()] = s
}

// Get returns a session or ErrSessionNotFound.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.items[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete discards a session, e.g. after the payment redirect completes.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.items, id)
}
