package application

import (
	"sync"

	"github.com/bnema/pitchside/internal/domain"
)

// SessionState is the process-wide session shared by the gateway, the
// realtime client and the commands. The zero value is signed out.
type SessionState struct {
	mu      sync.RWMutex
	session domain.Session
}

func NewSessionState() *SessionState {
	return &SessionState{}
}

// Current returns a copy that callers may keep.
func (s *SessionState) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySession(s.session)
}

func (s *SessionState) Present() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Present()
}

func (s *SessionState) Set(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.Session{User: &user, Authenticated: true}
}

func (s *SessionState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.Session{}
}

func copySession(session domain.Session) domain.Session {
	if session.User == nil {
		return domain.Session{Authenticated: session.Authenticated}
	}
	user := *session.User
	return domain.Session{User: &user, Authenticated: session.Authenticated}
}
