package repository

import (
	"context"
	"io"
)

// BlobStore defines the interface for binary file storage.
// Implementations should be provided by the infrastructure layer
// (local filesystem by default, MinIO/S3 optionally).
type BlobStore interface {
	// Put writes the content under a freshly generated stored name and
	// returns that name. The name is derived from the current timestamp,
	// a random disambiguator and the original file extension, so it is
	// unique even for concurrent uploads within the same millisecond.
	Put(ctx context.Context, originalName string, content io.Reader) (string, error)

	// Open returns a reader for the blob with the given stored name.
	// Caller is responsible for closing the returned ReadCloser.
	// Returns ErrBlobNotFound if the blob does not exist.
	Open(ctx context.Context, storedName string) (io.ReadCloser, error)

	// Delete removes the blob if present. A missing blob is not an error:
	// deletion is idempotent so callers can retry and compensation paths
	// never fail on an already-removed file.
	Delete(ctx context.Context, storedName string) error

	// Exists reports whether a blob with the given stored name is present.
	Exists(ctx context.Context, storedName string) (bool, error)
}
