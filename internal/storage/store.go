// Package storage persists document snapshots to durable local storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// ErrNotFound is returned by Store.Get when no snapshot exists under the key.
var ErrNotFound = errors.New("snapshot not found")

// Store is durable key/value storage holding serialized snapshots.
type Store interface {
	// Get returns the bytes stored under key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the bytes stored under key.
	Set(ctx context.Context, key string, data []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidKey reports whether key can name a snapshot in every backend: ASCII
// letters, digits, '.', '_' and '-' only.
func ValidKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}

// Open constructs the store for a backend. path is a directory for the file
// backend and a database file for the sqlite backend.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(path)
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", backend)
}
