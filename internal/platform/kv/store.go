// Package kv provides the key-value store abstraction used for the shared
// dashboard metrics cache. Implementations are injected so tests and
// single-process deployments can run without Redis.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound indicates the key has no value.
var ErrNotFound = errors.New("kv: key not found")

// Store is a minimal byte-oriented key-value store. Expiry policy is owned
// by callers, not the store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
