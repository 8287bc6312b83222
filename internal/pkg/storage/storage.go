package storage

import (
	"context"
	"io"
)

// Storage defines the minimal interface for object storage backends.
// Intentionally simple: put an object, delete an object, get its URL.
type Storage interface {
	// Put stores an object under the given key.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes an object by key. Returns nil if it doesn't exist.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is present under the key.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns the public URL for an object given its key.
	GetURL(key string) string
}
