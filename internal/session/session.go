package session

import (
	"sync"

	"chat-relay/internal/model"
)

// Session is the conversation state of one user key. Its history is only
// touched through the Store.
type Session struct {
	userKey string

	// reqMu serializes whole requests for this key.
	reqMu sync.Mutex

	mu    sync.Mutex
	turns []model.Turn
}

// UserKey returns the key the session was created for.
func (s *Session) UserKey() string {
	return s.userKey
}

// Lock acquires exclusive use of the session for one request.
func (s *Session) Lock() {
	s.reqMu.Lock()
}

// Unlock releases the request lock.
func (s *Session) Unlock() {
	s.reqMu.Unlock()
}
