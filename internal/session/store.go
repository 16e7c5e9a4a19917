package session

import (
	"sync"

	"chat-relay/internal/model"
)

// Store maps user keys to sessions. Sessions are created lazily and kept for
// the process lifetime.
type Store struct {
	maxHistorySize int

	mu       sync.RWMutex
	sessions map[string]*Session
}

// New creates an empty Store bounding each history to maxHistorySize turns
// after a trim.
func New(maxHistorySize int) *Store {
	if maxHistorySize < 1 {
		maxHistorySize = DefaultMaxHistorySize
	}
	return &Store{
		maxHistorySize: maxHistorySize,
		sessions:       make(map[string]*Session),
	}
}

// MaxHistorySize returns the configured bound.
func (s *Store) MaxHistorySize() int {
	return s.maxHistorySize
}

// GetOrCreate returns the session for userKey, creating an empty one on first use.
func (s *Store) GetOrCreate(userKey string) *Session {
	s.mu.RLock()
	sess, ok := s.sessions[userKey]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[userKey]; ok {
		return sess
	}
	sess = &Session{userKey: userKey}
	s.sessions[userKey] = sess
	return sess
}

// Trim drops the oldest turns until the history holds at most MaxHistorySize.
func (s *Store) Trim(sess *Session) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if over := len(sess.turns) - s.maxHistorySize; over > 0 {
		kept := make([]model.Turn, s.maxHistorySize)
		copy(kept, sess.turns[over:])
		sess.turns = kept
	}
}

// Append adds turn at the tail of the history.
func (s *Store) Append(sess *Session, turn model.Turn) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.turns = append(sess.turns, turn)
}

// Turns returns a copy of the history, oldest first.
func (s *Store) Turns(sess *Session) []model.Turn {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	out := make([]model.Turn, len(sess.turns))
	copy(out, sess.turns)
	return out
}

// Len returns the number of sessions held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
