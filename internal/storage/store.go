// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("key not found")

// Store defines the interface for blob storage operations.
// The trip collection is persisted as one document under one key, so a
// key/value contract is all the service layer needs. This abstraction allows
// swapping storage backends (SQLite, files, etc.) without changing the trip store.
type Store interface {
	// Get returns the value stored under key.
	// Returns ErrNotFound if nothing was stored yet.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error

	// Close releases any resources held by the store.
	Close() error
}
