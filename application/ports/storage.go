package ports

import "context"

// KeyValueStore is the port for the durable string-keyed, JSON-valued
// datastore the whole application persists into. Implementations must be
// safe for concurrent use; writes replace the full value under a key.
type KeyValueStore interface {
	// Get retrieves the value under key; found is false when the key is absent
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error

	// Delete removes key; deleting an absent key is not an error
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store
	Close() error
}
