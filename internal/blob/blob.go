// Package blob defines the byte-level storage contract memory records are
// persisted through, with filesystem and SQLite backends.
package blob

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no blob exists under the key.
// Callers treat it as a normal state, not a failure.
var ErrNotFound = errors.New("blob not found")

// Store persists opaque byte blobs by key. Put replaces the whole value;
// there are no partial updates.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Close() error
}
