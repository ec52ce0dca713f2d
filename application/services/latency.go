package services

import (
	"context"
	"time"
)

// LatencyGate simulates the network latency of a remote backend so the API
// behaves like the real integration it stands in for. A zero duration
// disables the gate, which is what tests use.
type LatencyGate struct {
	delay func() time.Duration
}

// NewLatencyGate creates a gate with a fixed delay
func NewLatencyGate(d time.Duration) *LatencyGate {
	return &LatencyGate{delay: func() time.Duration { return d }}
}

// NewDynamicLatencyGate creates a gate that reads its delay on every wait,
// so hot-reloaded configuration takes effect without a restart.
func NewDynamicLatencyGate(delay func() time.Duration) *LatencyGate {
	return &LatencyGate{delay: delay}
}

// Wait blocks for the configured delay or until ctx is cancelled
func (g *LatencyGate) Wait(ctx context.Context) error {
	d := g.delay()
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
