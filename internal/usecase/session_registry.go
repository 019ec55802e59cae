package usecase

import (
	"errors"
	"sync"
)

var ErrSessionNotFound = errors.New("match session not found")

// SessionRegistry tracks the sessions currently being played.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*MatchSession
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*MatchSession),
	}
}

func (that *SessionRegistry) Add(session *MatchSession) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[session.ID()] = session
}

func (that *SessionRegistry) Get(id string) (*MatchSession, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return session, nil
}

func (that *SessionRegistry) Remove(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.sessions, id)
}

func (that *SessionRegistry) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.sessions)
}
