package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/resumake/resumake-api/internal/service"
)

// Common errors returned by the Runner
var (
	ErrQueueFull   = errors.New("job queue is full")
	ErrQueueClosed = errors.New("job queue is closed")
)

// Generator runs one resume generation request to completion.
type Generator interface {
	Generate(ctx context.Context, req service.GenerateRequest) (string, error)
}

// RunnerConfig holds configuration for the job runner
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers process jobs
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory job queue
	QueueSize int
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

// Runner manages background processing of queued resume generation jobs.
type Runner struct {
	store      *Store
	generator  Generator
	jobChan    chan *Job
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     RunnerConfig
	logger     *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewRunner creates a new Runner.
func NewRunner(store *Store, generator Generator, config RunnerConfig, logger *slog.Logger) *Runner {
	if config.WorkerCount <= 0 {
		config.WorkerCount = DefaultRunnerConfig().WorkerCount
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultRunnerConfig().QueueSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		store:      store,
		generator:  generator,
		jobChan:    make(chan *Job, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger,
	}
}

// Submit registers a new job for the request and queues it for processing.
// Returns the job ID for status polling.
func (r *Runner) Submit(ctx context.Context, req service.GenerateRequest) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return uuid.Nil, ErrQueueClosed
	}

	j := New(req)
	r.store.Save(j)

	select {
	case r.jobChan <- j:
		r.logger.DebugContext(ctx, "job enqueued",
			"job_id", j.ID,
			"queue_len", len(r.jobChan),
			"queue_cap", cap(r.jobChan))
		return j.ID, nil
	default:
		// The job record stays visible as failed rather than vanishing.
		if err := r.store.UpdateStatus(j.ID, StatusFailed, ErrQueueFull.Error()); err != nil {
			r.logger.Error("failed to mark rejected job", "job_id", j.ID, "error", err)
		}
		return uuid.Nil, fmt.Errorf("%w: queue capacity %d reached", ErrQueueFull, cap(r.jobChan))
	}
}

// Start launches the worker pool.
func (r *Runner) Start() {
	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
}

// Stop shuts the runner down: no further submissions are accepted and
// workers exit once signalled.
func (r *Runner) Stop() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	r.cancelFunc()
	r.wg.Wait()
	close(r.jobChan)
}

// worker processes jobs from the queue until shutdown.
func (r *Runner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)

	for {
		select {
		case <-r.ctx.Done():
			r.logger.Debug("stopping worker", "worker_id", id)
			return

		case j, ok := <-r.jobChan:
			if !ok {
				r.logger.Debug("job channel closed, stopping worker", "worker_id", id)
				return
			}
			r.process(j, id)
		}
	}
}

// process handles execution of a single job.
func (r *Runner) process(j *Job, workerID int) {
	logger := r.logger.With("job_id", j.ID, "worker_id", workerID)

	if err := r.store.UpdateStatus(j.ID, StatusProcessing, ""); err != nil {
		logger.Error("failed to mark job processing", "error", err)
		return
	}

	logger.Info("processing job")

	result, err := r.generator.Generate(r.ctx, j.Request)
	if err != nil {
		logger.Error("job failed", "error", err)
		if updateErr := r.store.UpdateStatus(j.ID, StatusFailed, err.Error()); updateErr != nil {
			logger.Error("failed to mark job failed", "error", updateErr)
		}
		return
	}

	logger.Info("job completed")
	if err := r.store.SetResult(j.ID, result); err != nil {
		logger.Error("failed to record job result", "error", err)
	}
}
