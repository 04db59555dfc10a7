package checkout

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session id does not resolve to
// an open session.
var ErrSessionNotFound = errors.New("checkout session not found")

// SessionStore holds the open checkout sessions in memory. A session is
// exclusively owned by one register, and Update serializes transitions
// so each one sees the fully settled result of the previous one.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[uuid.UUID]*Session)}
}

// Put registers a session in the store.
func (st *SessionStore) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
}

// Get returns a session by id.
func (st *SessionStore) Get(id uuid.UUID) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete removes a session from the store.
func (st *SessionStore) Delete(id uuid.UUID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// View runs fn against a session under the read lock. For read-only
// callers that derive state without mutating the session.
func (st *SessionStore) View(id uuid.UUID, fn func(*Session)) error {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	fn(s)
	return nil
}

// Update runs fn against a session while holding the store lock, so
// two transitions on the same session can never interleave.
func (st *SessionStore) Update(id uuid.UUID, fn func(*Session) error) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	return fn(s)
}
