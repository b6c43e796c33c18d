package workflow

import (
	"context"
	"fmt"
	"log/slog"
)

// Operation is one unit of orchestrated work: a producer fetching or deriving
// data, or the consumer composing the final result. Operations return an
// opaque payload on success. Errors (and panics) raised by an operation never
// propagate as uncaught faults; the Guard converts them to failure outcomes.
type Operation func(ctx context.Context) (string, error)

// Guard wraps task execution with the at-most-once contract against a
// RunState. Every producer and the consumer are invoked exclusively through
// Run; this is the sole mechanism providing the idempotency guarantee.
type Guard struct {
	state  *RunState
	logger *slog.Logger
}

// NewGuard creates a Guard bound to the given run's state.
func NewGuard(state *RunState, logger *slog.Logger) *Guard {
	return &Guard{
		state:  state,
		logger: logger,
	}
}

// Run executes op for id at most once within the run.
//
// If the execution slot for id was already claimed, the previously recorded
// outcome is returned immediately; the duplicate attempt never re-executes
// and never blocks. A duplicate attempt that finds no recorded outcome means
// a task is being raced while still in flight, which the Coordinator's
// sequencing forbids, so it surfaces as ErrInvariantViolation.
//
// A nil op is the skip path: the slot is claimed and a distinguished
// "no input provided" failure is recorded without invoking anything, so the
// join barrier still sees a terminal state for the task.
func (g *Guard) Run(ctx context.Context, id TaskID, op Operation) (Outcome, error) {
	if !g.state.TryAdmit(id) {
		outcome, ok := g.state.Outcome(id)
		if !ok {
			return Outcome{}, fmt.Errorf(
				"%w: task %q admitted elsewhere with no recorded outcome", ErrInvariantViolation, id)
		}
		g.logger.DebugContext(ctx, "duplicate task invocation, returning recorded outcome",
			"task_id", id,
			"status", outcome.Status)
		return outcome, nil
	}

	var outcome Outcome
	if op == nil {
		g.logger.InfoContext(ctx, "task skipped, required input absent", "task_id", id)
		outcome = Fail(NoInputMessage)
	} else {
		outcome = g.invoke(ctx, id, op)
	}

	if err := g.state.RecordOutcome(id, outcome); err != nil {
		return Outcome{}, err
	}
	return outcome, nil
}

// invoke runs op exactly once, converting any returned error or panic into a
// failure outcome.
func (g *Guard) invoke(ctx context.Context, id TaskID, op Operation) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.ErrorContext(ctx, "task panicked", "task_id", id, "panic", r)
			outcome = Fail(fmt.Sprintf("task panicked: %v", r))
		}
	}()

	g.logger.DebugContext(ctx, "executing task", "task_id", id)

	payload, err := op(ctx)
	if err != nil {
		g.logger.WarnContext(ctx, "task failed", "task_id", id, "error", err)
		return Fail(err.Error())
	}

	g.logger.DebugContext(ctx, "task completed", "task_id", id, "payload_length", len(payload))
	return Succeed(payload)
}
