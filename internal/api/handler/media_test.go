package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/tkanda-dev/mediavault/internal/domain/repository"
)

// Mock BlobStore

type mockBlobStore struct {
	openFn func(ctx context.Context, storedName string) (io.ReadCloser, error)
}

func (m *mockBlobStore) Put(ctx context.Context, originalName string, content io.Reader) (string, error) {
	return "", nil
}

func (m *mockBlobStore) Open(ctx context.Context, storedName string) (io.ReadCloser, error) {
	if m.openFn != nil {
		return m.openFn(ctx, storedName)
	}
	return nil, repository.ErrBlobNotFound
}

func (m *mockBlobStore) Delete(ctx context.Context, storedName string) error {
	return nil
}

func (m *mockBlobStore) Exists(ctx context.Context, storedName string) (bool, error) {
	return false, nil
}

func newMediaRouter(blobs repository.BlobStore) chi.Router {
	h := NewMediaHandler(blobs)
	r := chi.NewRouter()
	r.Get("/media/{name}", h.Serve)
	return r
}

func TestMediaHandler_Serve(t *testing.T) {
	t.Run("StreamsWithContentType", func(t *testing.T) {
		blobs := &mockBlobStore{
			openFn: func(ctx context.Context, storedName string) (io.ReadCloser, error) {
				if storedName != "1700000000000-aaaa.mp4" {
					t.Errorf("storedName = %q", storedName)
				}
				return io.NopCloser(strings.NewReader("video bytes")), nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/media/1700000000000-aaaa.mp4", nil)
		rec := httptest.NewRecorder()
		newMediaRouter(blobs).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if got := rec.Body.String(); got != "video bytes" {
			t.Errorf("body = %q", got)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "video/mp4") {
			t.Errorf("Content-Type = %q", ct)
		}
	})

	t.Run("UnknownExtensionFallsBackToOctetStream", func(t *testing.T) {
		blobs := &mockBlobStore{
			openFn: func(ctx context.Context, storedName string) (io.ReadCloser, error) {
				return io.NopCloser(strings.NewReader("bytes")), nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/media/blob.unknownext", nil)
		rec := httptest.NewRecorder()
		newMediaRouter(blobs).ServeHTTP(rec, req)

		if ct := rec.Header().Get("Content-Type"); ct != "application/octet-stream" {
			t.Errorf("Content-Type = %q", ct)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/media/missing.mp4", nil)
		rec := httptest.NewRecorder()
		newMediaRouter(&mockBlobStore{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}
