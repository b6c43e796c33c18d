package workflow

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriver_RunWorkflow(t *testing.T) {
	t.Parallel()

	t.Run("returns the consumer outcome", func(t *testing.T) {
		t.Parallel()

		driver := NewDriver(DriverConfig{Timeout: time.Second}, testLogger())

		producers := []ProducerSpec{
			{ID: "repo-fetch", Op: func(ctx context.Context) (string, error) { return "A1", nil }},
			{ID: "page-scrape", Op: nil},
			{ID: "keyword-extract", Op: func(ctx context.Context) (string, error) { return "C1", nil }},
		}
		consumer := ConsumerSpec{
			ID: "compose",
			Op: func(ctx context.Context, inputs map[TaskID]Outcome) (string, error) {
				require.Equal(t, Succeed("A1"), inputs["repo-fetch"])
				require.Equal(t, Fail(NoInputMessage), inputs["page-scrape"])
				require.Equal(t, Succeed("C1"), inputs["keyword-extract"])
				return "composed", nil
			},
		}

		outcome, err := driver.RunWorkflow(context.Background(), producers, consumer)

		require.NoError(t, err)
		assert.Equal(t, Succeed("composed"), outcome)
	})

	t.Run("sequential runs are isolated", func(t *testing.T) {
		t.Parallel()

		driver := NewDriver(DriverConfig{Timeout: time.Second}, testLogger())

		var producerCalls, consumerCalls int32
		producers := []ProducerSpec{
			{ID: "repo-fetch", Op: func(ctx context.Context) (string, error) {
				atomic.AddInt32(&producerCalls, 1)
				return "repos", nil
			}},
		}
		consumer := ConsumerSpec{
			ID: "compose",
			Op: func(ctx context.Context, inputs map[TaskID]Outcome) (string, error) {
				atomic.AddInt32(&consumerCalls, 1)
				return "composed", nil
			},
		}

		for i := 0; i < 2; i++ {
			outcome, err := driver.RunWorkflow(context.Background(), producers, consumer)
			require.NoError(t, err)
			assert.Equal(t, Succeed("composed"), outcome)
		}

		// A producer admitted in run 1 is freely re-admitted in run 2.
		assert.Equal(t, int32(2), producerCalls)
		assert.Equal(t, int32(2), consumerCalls)
	})

	t.Run("deadline expiry returns a timeout", func(t *testing.T) {
		t.Parallel()

		timeout := 50 * time.Millisecond
		driver := NewDriver(DriverConfig{Timeout: timeout}, testLogger())

		producers := []ProducerSpec{
			{ID: "repo-fetch", Op: func(ctx context.Context) (string, error) {
				// Outlives the run deadline by far; the run is abandoned
				// while this producer is still in flight.
				time.Sleep(5 * time.Second)
				return "too late", nil
			}},
		}
		consumer := ConsumerSpec{
			ID: "compose",
			Op: func(ctx context.Context, inputs map[TaskID]Outcome) (string, error) {
				return "composed", nil
			},
		}

		start := time.Now()
		_, err := driver.RunWorkflow(context.Background(), producers, consumer)
		elapsed := time.Since(start)

		assert.ErrorIs(t, err, ErrRunTimeout)
		assert.GreaterOrEqual(t, elapsed, timeout, "must not time out early")
		assert.Less(t, elapsed, 10*timeout, "must not hang past the deadline")
	})

	t.Run("caller cancellation is not reported as a timeout", func(t *testing.T) {
		t.Parallel()

		driver := NewDriver(DriverConfig{Timeout: time.Second}, testLogger())

		ctx, cancel := context.WithCancel(context.Background())
		producers := []ProducerSpec{
			{ID: "repo-fetch", Op: func(ctx context.Context) (string, error) {
				cancel()
				// Keep blocking so the run is abandoned rather than finishing.
				time.Sleep(5 * time.Second)
				return "", ctx.Err()
			}},
		}
		consumer := ConsumerSpec{
			ID: "compose",
			Op: func(ctx context.Context, inputs map[TaskID]Outcome) (string, error) {
				return "composed", nil
			},
		}

		_, err := driver.RunWorkflow(ctx, producers, consumer)

		assert.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, ErrRunTimeout)
	})

	t.Run("zero timeout falls back to the default", func(t *testing.T) {
		t.Parallel()

		driver := NewDriver(DriverConfig{}, testLogger())

		assert.Equal(t, DefaultDriverConfig().Timeout, driver.config.Timeout)
	})
}
