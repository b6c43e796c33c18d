package job

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/resumake/resumake-api/internal/domain"
)

// Store is an in-memory job registry. It hands out copies so callers can
// never race the workers on a shared Job value.
type Store struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*Job
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		jobs: make(map[uuid.UUID]*Job),
	}
}

// Save registers a job.
func (s *Store) Save(j *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *j
	s.jobs[j.ID] = &clone
}

// Get returns a copy of the job with the given ID, or domain.ErrNotFound.
func (s *Store) Get(id uuid.UUID) (*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: job %s", domain.ErrNotFound, id)
	}
	clone := *j
	return &clone, nil
}

// UpdateStatus moves a job to the given status, recording an error message
// for failed jobs.
func (s *Store) UpdateStatus(id uuid.UUID, status Status, errorMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return fmt.Errorf("%w: job %s", domain.ErrNotFound, id)
	}
	j.Status = status
	j.Error = errorMsg
	j.UpdatedAt = time.Now().UTC()
	return nil
}

// SetResult stores a completed job's resume document and marks it completed.
func (s *Store) SetResult(id uuid.UUID, result string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return fmt.Errorf("%w: job %s", domain.ErrNotFound, id)
	}
	j.Status = StatusCompleted
	j.Result = result
	j.Error = ""
	j.UpdatedAt = time.Now().UTC()
	return nil
}
