// Package storage defines the durable key-value boundary of the ledger core.
// Every tracker persists its state as a JSON snapshot under a stable key;
// the adapter behind the interface decides where the bytes live. Production
// uses the postgres adapter, tests use memstore.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store is the adapter injected into every repository.
type Store interface {
	// Get returns the value stored under key. The second return value
	// reports whether the key exists at all.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// GetJSON loads and unmarshals the value under key into dst.
// Returns false when the key is missing. A value that fails to unmarshal is
// reported as an error so callers can fall back to reseeding defaults.
func GetJSON(ctx context.Context, s Store, key string, dst any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("storage get %q: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("storage decode %q: %w", key, err)
	}
	return true, nil
}

// SetJSON marshals v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage encode %q: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("storage set %q: %w", key, err)
	}
	return nil
}
