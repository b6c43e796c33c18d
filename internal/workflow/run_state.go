package workflow

import (
	"fmt"
	"sync"
)

// RunState is the per-run record of which tasks have been admitted for
// execution and what each finished task produced. It is the single source of
// truth for the at-most-once guarantee.
//
// A RunState is owned by exactly one run: the Driver allocates a fresh one per
// invocation and discards it when the run returns, so idempotency bookkeeping
// can never leak between runs. One mutex covers both the admitted set and the
// outcomes map so that check-and-admit is atomic with respect to concurrent
// admission attempts for the same identifier.
type RunState struct {
	mu       sync.Mutex
	admitted map[TaskID]struct{}
	outcomes map[TaskID]Outcome
}

// NewRunState creates an empty RunState.
func NewRunState() *RunState {
	return &RunState{
		admitted: make(map[TaskID]struct{}),
		outcomes: make(map[TaskID]Outcome),
	}
}

// TryAdmit atomically claims the single execution slot for id. It returns
// true if the caller now owns execution of that task, false if the slot was
// already claimed earlier in this run.
func (s *RunState) TryAdmit(id TaskID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.admitted[id]; ok {
		return false
	}
	s.admitted[id] = struct{}{}
	return true
}

// RecordOutcome stores the terminal outcome for id. Outcomes are write-once:
// recording a second outcome for the same identifier returns
// ErrInvariantViolation and leaves the existing value untouched.
func (s *RunState) RecordOutcome(id TaskID, outcome Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.outcomes[id]; ok {
		return fmt.Errorf("%w: outcome for task %q already recorded", ErrInvariantViolation, id)
	}
	s.outcomes[id] = outcome
	return nil
}

// Outcome returns the recorded outcome for id, if any. It never blocks; an
// admitted identifier with no outcome yet means the task is still in flight.
// Callers that need to wait for completion go through the Coordinator's join
// barrier, not polling.
func (s *RunState) Outcome(id TaskID) (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome, ok := s.outcomes[id]
	return outcome, ok
}
