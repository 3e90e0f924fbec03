package storage

import (
	"sync"

	"github.com/mkleist/wortschatz-bot/internal/service"
)

// SessionStore holds the active practice session per chat. Only one live
// session exists per chat; storing a new one supersedes the old.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*service.Session
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*service.Session),
	}
}

// Store saves the session for a chat, replacing any previous one. A
// superseded session is exited so its pending timers are canceled.
func (s *SessionStore) Store(chatID int64, sess *service.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.sessions[chatID]; ok && old != sess {
		old.Exit()
	}
	s.sessions[chatID] = sess
}

// Get retrieves the session for a chat.
func (s *SessionStore) Get(chatID int64) (*service.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[chatID]
	return sess, ok
}

// Delete removes and exits the session for a chat.
func (s *SessionStore) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[chatID]; ok {
		sess.Exit()
		delete(s.sessions, chatID)
	}
}
