package profile

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore holds profiles in memory and is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	byUser map[string]CandidateProfile
}

// NewMemoryStore constructs a MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byUser: make(map[string]CandidateProfile)}
}

// Get returns a cloned snapshot of the user's profile.
func (s *MemoryStore) Get(ctx context.Context, userID string) (CandidateProfile, error) {
	if err := ctx.Err(); err != nil {
		return CandidateProfile{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byUser[strings.TrimSpace(userID)]
	if !ok {
		return CandidateProfile{}, ErrNotFound
	}
	return p.Clone(), nil
}

// Put stores the profile keyed by its user ID.
func (s *MemoryStore) Put(ctx context.Context, p CandidateProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[strings.TrimSpace(p.UserID)] = p.Clone()
	return nil
}

var _ Store = (*MemoryStore)(nil)
