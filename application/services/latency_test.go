package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatencyGate(t *testing.T) {
	t.Run("zero delay passes immediately", func(t *testing.T) {
		gate := NewLatencyGate(0)

		start := time.Now()
		require.NoError(t, gate.Wait(context.Background()))
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("waits out the configured delay", func(t *testing.T) {
		gate := NewLatencyGate(30 * time.Millisecond)

		start := time.Now()
		require.NoError(t, gate.Wait(context.Background()))
		assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	})

	t.Run("cancellation interrupts the wait", func(t *testing.T) {
		gate := NewLatencyGate(5 * time.Second)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		start := time.Now()
		err := gate.Wait(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("an already cancelled context fails even at zero delay", func(t *testing.T) {
		gate := NewLatencyGate(0)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, gate.Wait(ctx), context.Canceled)
	})

	t.Run("dynamic gate reads the delay per wait", func(t *testing.T) {
		delay := 20 * time.Millisecond
		gate := NewDynamicLatencyGate(func() time.Duration { return delay })

		start := time.Now()
		require.NoError(t, gate.Wait(context.Background()))
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

		delay = 0
		start = time.Now()
		require.NoError(t, gate.Wait(context.Background()))
		assert.Less(t, time.Since(start), 20*time.Millisecond)
	})
}
