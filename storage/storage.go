// Package storage abstracts image attachments as opaque blobs: store bytes,
// get back a reference; retrieve a reference, get back the bytes. Posts only
// ever hold the reference.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a reference resolves to nothing.
var ErrNotFound = errors.New("image not found")

type ImageStore interface {
	// Store persists the blob and returns its reference.
	Store(ctx context.Context, data []byte, contentType string) (string, error)
	// Retrieve returns the blob and its content type for a reference. A
	// dangling reference yields ErrNotFound.
	Retrieve(ctx context.Context, key string) ([]byte, string, error)
}
