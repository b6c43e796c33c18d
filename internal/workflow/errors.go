package workflow

import "errors"

// Common errors returned by the workflow package
var (
	// ErrInvariantViolation is returned when the at-most-once guarantee was
	// about to be broken. It signals a coordination bug and aborts the run
	// rather than being absorbed like an ordinary task failure.
	ErrInvariantViolation = errors.New("task execution invariant violated")

	// ErrRunTimeout is returned when the run-level deadline expires before
	// the consumer has produced an outcome. It is distinct from a task
	// failure so callers can tell "a task failed" from "the run never
	// finished in time".
	ErrRunTimeout = errors.New("workflow run exceeded deadline")
)
