package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// DriverConfig holds configuration for the run driver
type DriverConfig struct {
	// Timeout bounds one whole run. There is no per-task cancellation; a
	// slow producer only stops blocking the caller once this deadline fires.
	Timeout time.Duration
}

// DefaultDriverConfig returns a DriverConfig with reasonable defaults
func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		Timeout: 2 * time.Minute,
	}
}

// Driver creates a fresh RunState per invocation, runs the Coordinator under
// a deadline, and surfaces exactly one terminal result to the caller: the
// consumer's outcome, an invariant error, or ErrRunTimeout.
type Driver struct {
	coordinator *Coordinator
	config      DriverConfig
	logger      *slog.Logger
}

// NewDriver creates a new Driver.
func NewDriver(config DriverConfig, logger *slog.Logger) *Driver {
	if config.Timeout <= 0 {
		config.Timeout = DefaultDriverConfig().Timeout
	}
	return &Driver{
		coordinator: NewCoordinator(logger),
		config:      config,
		logger:      logger,
	}
}

// runResult carries the coordinator's result across the deadline select.
type runResult struct {
	outcome Outcome
	err     error
}

// RunWorkflow executes one end-to-end run. Each call starts from a fresh,
// empty RunState; separate runs can never observe each other's bookkeeping.
//
// On deadline expiry the in-flight execution is abandoned, not awaited: work
// still running may complete and record into the discarded RunState, which is
// harmless because that state is never read again.
func (d *Driver) RunWorkflow(
	ctx context.Context,
	producers []ProducerSpec,
	consumer ConsumerSpec,
) (Outcome, error) {
	runID := uuid.New()
	logger := d.logger.With("run_id", runID)

	state := NewRunState()

	runCtx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	logger.InfoContext(ctx, "starting workflow run",
		"producer_count", len(producers),
		"timeout", d.config.Timeout)

	// Buffered so an abandoned run can deliver its late result and exit.
	resultChan := make(chan runResult, 1)
	go func() {
		outcome, err := d.coordinator.Execute(runCtx, state, producers, consumer)
		resultChan <- runResult{outcome: outcome, err: err}
	}()

	select {
	case result := <-resultChan:
		if result.err != nil {
			logger.ErrorContext(ctx, "workflow run aborted", "error", result.err)
			return Outcome{}, result.err
		}
		logger.InfoContext(ctx, "workflow run finished", "status", result.outcome.Status)
		return result.outcome, nil

	case <-runCtx.Done():
		if errors.Is(runCtx.Err(), context.Canceled) {
			logger.WarnContext(ctx, "workflow run cancelled by caller")
			return Outcome{}, runCtx.Err()
		}
		logger.WarnContext(ctx, "workflow run abandoned", "timeout", d.config.Timeout)
		return Outcome{}, fmt.Errorf("%w after %s", ErrRunTimeout, d.config.Timeout)
	}
}
