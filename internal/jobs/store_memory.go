package jobs

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore holds job postings in memory and is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string]JobPosting
}

// NewMemoryStore constructs a MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]JobPosting)}
}

// Get returns a job posting by ID.
func (s *MemoryStore) Get(ctx context.Context, jobID string) (JobPosting, error) {
	if err := ctx.Err(); err != nil {
		return JobPosting{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.byID[strings.TrimSpace(jobID)]
	if !ok {
		return JobPosting{}, ErrNotFound
	}
	job.RequiredSkills = append([]string(nil), job.RequiredSkills...)
	return job, nil
}

// Put stores a job posting keyed by its ID.
func (s *MemoryStore) Put(ctx context.Context, job JobPosting) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	job.RequiredSkills = append([]string(nil), job.RequiredSkills...)
	s.byID[strings.TrimSpace(job.ID)] = job
	return nil
}

var _ Store = (*MemoryStore)(nil)
