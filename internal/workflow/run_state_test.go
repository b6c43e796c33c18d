package workflow

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunState_TryAdmit(t *testing.T) {
	t.Parallel()

	t.Run("first admission wins", func(t *testing.T) {
		t.Parallel()

		state := NewRunState()

		assert.True(t, state.TryAdmit("repo-fetch"))
		assert.False(t, state.TryAdmit("repo-fetch"))
	})

	t.Run("identifiers are independent", func(t *testing.T) {
		t.Parallel()

		state := NewRunState()

		assert.True(t, state.TryAdmit("repo-fetch"))
		assert.True(t, state.TryAdmit("page-scrape"))
	})

	t.Run("exactly one winner under concurrency", func(t *testing.T) {
		t.Parallel()

		state := NewRunState()
		var admitted int32
		var wg sync.WaitGroup

		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if state.TryAdmit("keyword-extract") {
					atomic.AddInt32(&admitted, 1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), admitted)
	})
}

func TestRunState_RecordOutcome(t *testing.T) {
	t.Parallel()

	t.Run("stores and returns the outcome", func(t *testing.T) {
		t.Parallel()

		state := NewRunState()

		err := state.RecordOutcome("repo-fetch", Succeed("repos"))
		require.NoError(t, err)

		outcome, ok := state.Outcome("repo-fetch")
		require.True(t, ok)
		assert.Equal(t, Succeed("repos"), outcome)
	})

	t.Run("write-once per identifier", func(t *testing.T) {
		t.Parallel()

		state := NewRunState()
		require.NoError(t, state.RecordOutcome("repo-fetch", Succeed("first")))

		err := state.RecordOutcome("repo-fetch", Fail("second"))

		assert.ErrorIs(t, err, ErrInvariantViolation)

		// The original value must be untouched.
		outcome, ok := state.Outcome("repo-fetch")
		require.True(t, ok)
		assert.Equal(t, Succeed("first"), outcome)
	})
}

func TestRunState_Outcome(t *testing.T) {
	t.Parallel()

	t.Run("absent identifier", func(t *testing.T) {
		t.Parallel()

		state := NewRunState()

		_, ok := state.Outcome("page-scrape")
		assert.False(t, ok)
	})

	t.Run("admitted but in flight", func(t *testing.T) {
		t.Parallel()

		state := NewRunState()
		require.True(t, state.TryAdmit("page-scrape"))

		_, ok := state.Outcome("page-scrape")
		assert.False(t, ok)
	})
}
