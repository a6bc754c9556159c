package session

import (
	"sync"

	"github.com/mark-assistant-go/internal/models"
)

// Store keeps per-user conversation state for the lifetime of the
// process. Nothing is persisted across restarts.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*models.Session),
	}
}

// GetOrCreate returns the session for userID, creating it lazily with
// jarvis mode off and an empty conversation. It never fails.
func (s *Store) GetOrCreate(userID string) *models.Session {
	s.mu.RLock()
	sess, ok := s.sessions[userID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[userID]; ok {
		return sess
	}
	sess = &models.Session{UserID: userID}
	s.sessions[userID] = sess
	return sess
}

// SetMode sets the jarvis mode flag, creating the session if absent.
// Idempotent.
func (s *Store) SetMode(userID string, enabled bool) {
	sess := s.GetOrCreate(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.JarvisMode = enabled
}

// Mode reports the jarvis mode flag for userID, false if unknown
func (s *Store) Mode(userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return false
	}
	return sess.JarvisMode
}

// AppendTurn appends the user message and the assistant reply to the
// conversation, in that order. Storage is unbounded; only the recent
// window is ever read back.
func (s *Store) AppendTurn(userID, userText, assistantText string) {
	sess := s.GetOrCreate(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.Conversation = append(sess.Conversation,
		models.Message{Role: models.RoleUser, Content: userText},
		models.Message{Role: models.RoleAssistant, Content: assistantText},
	)
}

// RecentContext returns up to the last n conversation records in
// chronological order. The returned slice is a copy.
func (s *Store) RecentContext(userID string, n int) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	if !ok || n <= 0 {
		return nil
	}
	conv := sess.Conversation
	if len(conv) > n {
		conv = conv[len(conv)-n:]
	}
	out := make([]models.Message, len(conv))
	copy(out, conv)
	return out
}

// Len reports how many conversation records are stored for userID
func (s *Store) Len(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return 0
	}
	return len(sess.Conversation)
}

// Count reports the number of known sessions
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
