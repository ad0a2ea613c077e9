// Package blob provides BlobStore implementations for binary asset files.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tkanda-dev/mediavault/internal/domain/repository"
	"github.com/tkanda-dev/mediavault/internal/infrastructure/metrics"
)

// FSStore implements repository.BlobStore on a local directory.
// Every blob lives directly under the root; stored names are flat filenames.
type FSStore struct {
	root string
}

// NewFSStore creates an FSStore rooted at dir, creating the directory if it
// does not exist.
func NewFSStore(dir string) (*FSStore, error) {
	if dir == "" {
		return nil, errors.New("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FSStore{root: dir}, nil
}

// Put writes content to a freshly named file and returns the stored name.
// The write goes to a temp file first and is renamed into place, so a
// partially written blob is never visible under its stored name.
func (s *FSStore) Put(ctx context.Context, originalName string, content io.Reader) (string, error) {
	storedName := generateStoredName(originalName)

	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		metrics.BlobOperationsTotal.WithLabelValues(metrics.BlobOpPut, metrics.StatusError).Inc()
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		metrics.BlobOperationsTotal.WithLabelValues(metrics.BlobOpPut, metrics.StatusError).Inc()
		return "", fmt.Errorf("failed to write blob: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		metrics.BlobOperationsTotal.WithLabelValues(metrics.BlobOpPut, metrics.StatusError).Inc()
		return "", fmt.Errorf("failed to close blob file: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.root, storedName)); err != nil {
		os.Remove(tmp.Name())
		metrics.BlobOperationsTotal.WithLabelValues(metrics.BlobOpPut, metrics.StatusError).Inc()
		return "", fmt.Errorf("failed to place blob: %w", err)
	}

	metrics.BlobOperationsTotal.WithLabelValues(metrics.BlobOpPut, metrics.StatusSuccess).Inc()
	return storedName, nil
}

// Open returns a reader for the named blob.
func (s *FSStore) Open(ctx context.Context, storedName string) (io.ReadCloser, error) {
	path, err := s.resolve(storedName)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, repository.ErrBlobNotFound
		}
		metrics.BlobOperationsTotal.WithLabelValues(metrics.BlobOpOpen, metrics.StatusError).Inc()
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}

	metrics.BlobOperationsTotal.WithLabelValues(metrics.BlobOpOpen, metrics.StatusSuccess).Inc()
	return f, nil
}

// Delete removes the named blob. A missing file is success: delete is
// idempotent so compensation paths can always retry safely.
func (s *FSStore) Delete(ctx context.Context, storedName string) error {
	path, err := s.resolve(storedName)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		metrics.BlobOperationsTotal.WithLabelValues(metrics.BlobOpDelete, metrics.StatusError).Inc()
		return fmt.Errorf("failed to delete blob: %w", err)
	}

	metrics.BlobOperationsTotal.WithLabelValues(metrics.BlobOpDelete, metrics.StatusSuccess).Inc()
	return nil
}

// Exists reports whether the named blob is present.
func (s *FSStore) Exists(ctx context.Context, storedName string) (bool, error) {
	path, err := s.resolve(storedName)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		metrics.BlobOperationsTotal.WithLabelValues(metrics.BlobOpExists, metrics.StatusError).Inc()
		return false, fmt.Errorf("failed to stat blob: %w", err)
	}

	return true, nil
}

// resolve maps a stored name to its path under the root, rejecting names
// that would escape the storage directory.
func (s *FSStore) resolve(storedName string) (string, error) {
	if storedName == "" || storedName == "." || storedName == ".." || storedName != filepath.Base(storedName) {
		return "", fmt.Errorf("%w: invalid stored name %q", repository.ErrBlobNotFound, storedName)
	}
	return filepath.Join(s.root, storedName), nil
}

// generateStoredName builds a collision-resistant stored name from the
// current millisecond timestamp, a random disambiguator and the original
// file extension. The timestamp keeps names roughly sortable by upload
// time; the uuid guarantees uniqueness for concurrent uploads within the
// same millisecond.
func generateStoredName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
}

// Compile-time verification that FSStore implements repository.BlobStore.
var _ repository.BlobStore = (*FSStore)(nil)
