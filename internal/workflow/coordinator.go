package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// ProducerSpec names one independent producer task. Producers have no data
// dependency on each other, so dispatch order among them is unspecified and
// must not be relied on. A nil Op marks a producer whose required input is
// absent; it is recorded as a "no input provided" failure without being
// invoked.
type ProducerSpec struct {
	ID TaskID
	Op Operation
}

// ConsumerOperation composes the workflow's final result from the producers'
// recorded outcomes. Failed producers appear in the input map as explicit
// failure outcomes; the operation decides how to degrade, the orchestrator
// never drops them.
type ConsumerOperation func(ctx context.Context, inputs map[TaskID]Outcome) (string, error)

// ConsumerSpec names the single consumer task that joins all producer
// outcomes.
type ConsumerSpec struct {
	ID TaskID
	Op ConsumerOperation
}

// Coordinator admits producer tasks, holds the join barrier, and admits the
// consumer only once every dispatched producer has a recorded terminal
// outcome.
type Coordinator struct {
	logger *slog.Logger
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(logger *slog.Logger) *Coordinator {
	return &Coordinator{logger: logger}
}

// Execute runs the fan-out/fan-in algorithm against the given run state:
//
//  1. Dispatch every producer concurrently through the Guard.
//  2. Wait for all of them to reach a terminal outcome. This is the join
//     barrier: the consumer never starts earlier, regardless of producer
//     failures.
//  3. Build the consumer input from the recorded outcomes, failures included.
//  4. Run the consumer through the Guard and return its outcome as the
//     workflow result.
//
// A producer failure is absorbed into its recorded outcome and degrades the
// consumer's input for that identifier only. An invariant violation aborts
// the run.
func (c *Coordinator) Execute(
	ctx context.Context,
	state *RunState,
	producers []ProducerSpec,
	consumer ConsumerSpec,
) (Outcome, error) {
	guard := NewGuard(state, c.logger)

	var wg sync.WaitGroup
	errs := make([]error, len(producers))

	for i, p := range producers {
		wg.Add(1)
		go func(i int, p ProducerSpec) {
			defer wg.Done()
			_, err := guard.Run(ctx, p.ID, p.Op)
			errs[i] = err
		}(i, p)
	}

	// Join barrier: every producer has a recorded terminal outcome past this
	// point, and outcomes are immutable, so all later readers agree.
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return Outcome{}, fmt.Errorf("producer dispatch: %w", err)
		}
	}

	inputs := make(map[TaskID]Outcome, len(producers))
	for _, p := range producers {
		outcome, ok := state.Outcome(p.ID)
		if !ok {
			return Outcome{}, fmt.Errorf(
				"%w: producer %q passed the join barrier without an outcome", ErrInvariantViolation, p.ID)
		}
		inputs[p.ID] = outcome
	}

	c.logger.DebugContext(ctx, "all producers terminal, admitting consumer",
		"consumer_id", consumer.ID,
		"producer_count", len(producers))

	return guard.Run(ctx, consumer.ID, func(ctx context.Context) (string, error) {
		return consumer.Op(ctx, inputs)
	})
}
