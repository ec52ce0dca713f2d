// Package instrumentedkv decorates a KeyValueStore with Prometheus
// operation counters and latency histograms.
package instrumentedkv

import (
	"context"
	"time"

	"meumuseu/application/ports"
	"meumuseu/pkg/observability"
)

// Store wraps another KeyValueStore and records every operation
type Store struct {
	next    ports.KeyValueStore
	metrics *observability.Collector
}

// Wrap decorates the given store. A nil collector returns the store
// unchanged.
func Wrap(next ports.KeyValueStore, metrics *observability.Collector) ports.KeyValueStore {
	if metrics == nil {
		return next
	}
	return &Store{next: next, metrics: metrics}
}

// Get retrieves the value under key and records the observation
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	value, found, err := s.next.Get(ctx, key)
	s.metrics.ObserveKV("get", statusOf(err), time.Since(start))
	return value, found, err
}

// Set stores the value under key and records the observation
func (s *Store) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := s.next.Set(ctx, key, value)
	s.metrics.ObserveKV("set", statusOf(err), time.Since(start))
	return err
}

// Delete removes the key and records the observation
func (s *Store) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.next.Delete(ctx, key)
	s.metrics.ObserveKV("delete", statusOf(err), time.Since(start))
	return err
}

// Close closes the underlying store
func (s *Store) Close() error {
	return s.next.Close()
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
