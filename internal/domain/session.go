package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session holds one client's AnchorState. Updates for the same session may
// run concurrently; each takes a request id from BeginRequest and its result
// is only committed if no newer request has committed first.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu            sync.Mutex
	state         AnchorState
	lastRequestID uint64
	updatedAt     time.Time
}

func NewSession(id uuid.UUID, now time.Time) *Session {
	return &Session{
		ID:        id,
		CreatedAt: now,
		updatedAt: now,
	}
}

// BeginRequest hands out the next request id.
func (s *Session) BeginRequest() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastRequestID++
	return s.lastRequestID
}

// State returns the committed state.
func (s *Session) State() AnchorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// UpdatedAt returns when the state was last committed.
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// Commit stores next unless a state from a newer request is already stored.
func (s *Session) Commit(next AnchorState, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if next.RequestID <= s.state.RequestID {
		return false
	}
	s.state = next
	s.updatedAt = now
	return true
}
