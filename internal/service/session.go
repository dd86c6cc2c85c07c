package service

import (
	"context"
	"sync"
	"time"

	"github.com/pageza/mealfinder/backend/internal/types"
)

// MemoryResultStore keeps result sets in process memory. It is used when no
// Redis server is configured.
type MemoryResultStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*memorySession
}

type memorySession struct {
	seq     uint64
	set     *types.ResultSet
	touched time.Time
}

// NewMemoryResultStore creates a store whose idle sessions expire after ttl.
func NewMemoryResultStore(ttl time.Duration) *MemoryResultStore {
	return &MemoryResultStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*memorySession),
	}
}

func (s *MemoryResultStore) Begin(ctx context.Context, sessionID string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sessionID)
	sess.seq++
	return sess.seq, nil
}

func (s *MemoryResultStore) Commit(ctx context.Context, set *types.ResultSet) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(set.SessionID)
	if set.Seq != sess.seq {
		return false, nil
	}
	stored := *set
	stored.Recipes = append([]types.RecipeDetail(nil), set.Recipes...)
	sess.set = &stored
	return true, nil
}

func (s *MemoryResultStore) Latest(ctx context.Context, sessionID string) (*types.ResultSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok || s.expired(sess) || sess.set == nil {
		return nil, nil
	}
	sess.touched = s.now()
	set := *sess.set
	return &set, nil
}

// session returns the live session, creating or resetting it as needed.
// Callers hold s.mu.
func (s *MemoryResultStore) session(id string) *memorySession {
	sess, ok := s.sessions[id]
	if !ok || s.expired(sess) {
		s.evictExpired()
		sess = &memorySession{}
		s.sessions[id] = sess
	}
	sess.touched = s.now()
	return sess
}

func (s *MemoryResultStore) expired(sess *memorySession) bool {
	return s.ttl > 0 && s.now().Sub(sess.touched) > s.ttl
}

func (s *MemoryResultStore) evictExpired() {
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
		}
	}
}
