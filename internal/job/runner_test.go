package job

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumake/resumake-api/internal/service"
)

type stubGenerator struct {
	result string
	err    error
	delay  time.Duration
}

func (s *stubGenerator) Generate(ctx context.Context, req service.GenerateRequest) (string, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.result, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func waitForStatus(t *testing.T, store *Store, id uuid.UUID, status Status) *Job {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatalf("job %s never reached status %s", id, status)
		case <-time.After(5 * time.Millisecond):
			j, err := store.Get(id)
			require.NoError(t, err)
			if j.Status == status {
				return j
			}
		}
	}
}

func TestRunner(t *testing.T) {
	t.Parallel()

	t.Run("processes a job to completion", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		runner := NewRunner(store, &stubGenerator{result: `{"summary": "done"}`}, DefaultRunnerConfig(), testLogger())
		runner.Start()
		defer runner.Stop()

		id, err := runner.Submit(context.Background(), service.GenerateRequest{GitHubURL: "https://github.com/octocat"})
		require.NoError(t, err)

		j := waitForStatus(t, store, id, StatusCompleted)
		assert.Equal(t, `{"summary": "done"}`, j.Result)
	})

	t.Run("records a failed job", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		runner := NewRunner(store, &stubGenerator{err: errors.New("model unavailable")}, DefaultRunnerConfig(), testLogger())
		runner.Start()
		defer runner.Stop()

		id, err := runner.Submit(context.Background(), service.GenerateRequest{GitHubURL: "https://github.com/octocat"})
		require.NoError(t, err)

		j := waitForStatus(t, store, id, StatusFailed)
		assert.Equal(t, "model unavailable", j.Error)
	})

	t.Run("full queue rejects the submission", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		// No workers started, so the queue never drains.
		runner := NewRunner(store, &stubGenerator{}, RunnerConfig{WorkerCount: 1, QueueSize: 1}, testLogger())

		_, err := runner.Submit(context.Background(), service.GenerateRequest{})
		require.NoError(t, err)

		id, err := runner.Submit(context.Background(), service.GenerateRequest{})

		assert.ErrorIs(t, err, ErrQueueFull)
		assert.Equal(t, uuid.Nil, id)
	})

	t.Run("submit after stop is rejected", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		runner := NewRunner(store, &stubGenerator{}, DefaultRunnerConfig(), testLogger())
		runner.Start()
		runner.Stop()

		_, err := runner.Submit(context.Background(), service.GenerateRequest{})

		assert.ErrorIs(t, err, ErrQueueClosed)
	})
}
