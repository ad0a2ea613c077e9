package handler

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/tkanda-dev/mediavault/internal/domain/repository"
)

// MediaHandler streams stored blobs. Stored names are opaque, so the
// content type is derived from the name's extension.
type MediaHandler struct {
	blobs repository.BlobStore
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(blobs repository.BlobStore) *MediaHandler {
	return &MediaHandler{blobs: blobs}
}

// Serve handles GET /media/{name}
func (h *MediaHandler) Serve(w http.ResponseWriter, r *http.Request) {
	storedName := chi.URLParam(r, "name")

	reader, err := h.blobs.Open(r.Context(), storedName)
	if err != nil {
		if errors.Is(err, repository.ErrBlobNotFound) {
			Error(w, http.StatusNotFound, "blob_not_found", "File not found")
			return
		}
		Error(w, http.StatusInternalServerError, "storage_error", "Failed to open file")
		return
	}
	defer reader.Close()

	if contentType := mime.TypeByExtension(filepath.Ext(storedName)); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}

	if _, err := io.Copy(w, reader); err != nil {
		// Headers are already written; all we can do is log.
		slog.Warn("failed to stream blob",
			"stored_name", storedName,
			"error", err,
		)
	}
}
