package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tkanda-dev/mediavault/internal/domain/model"
	"github.com/tkanda-dev/mediavault/internal/domain/repository"
	"github.com/tkanda-dev/mediavault/internal/usecase"
)

// Request/Response types

type AssetResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Caption     string `json:"caption,omitempty"`
	Transcript  string `json:"transcript,omitempty"`
	CategoryID  *int64 `json:"category_id,omitempty"`
	VideoURL    string `json:"video_url"`
	ThumbURL    string `json:"thumb_url"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type ListAssetsResponse struct {
	Assets []AssetResponse `json:"assets"`
	Count  int             `json:"count"`
}

// AssetHandler handles asset-related HTTP requests. Uploads arrive as
// multipart forms with "video" and "thumbnail" file parts.
type AssetHandler struct {
	svc            usecase.AssetService
	maxUploadBytes int64
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(svc usecase.AssetService, maxUploadBytes int64) *AssetHandler {
	return &AssetHandler{svc: svc, maxUploadBytes: maxUploadBytes}
}

// Create handles POST /v1/assets
func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Request must be a multipart form within the upload size limit")
		return
	}
	defer r.MultipartForm.RemoveAll()

	input := usecase.CreateAssetInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Caption:     r.FormValue("caption"),
		Transcript:  r.FormValue("transcript"),
	}

	if raw := r.FormValue("category_id"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			Error(w, http.StatusBadRequest, "invalid_category_id", "Category ID must be an integer")
			return
		}
		input.CategoryID = &categoryID
	}

	video, err := filePayload(r, "video")
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_video", "Video file part is malformed")
		return
	}
	if video != nil {
		defer video.close()
		input.Video = &video.UploadPayload
	}

	thumb, err := filePayload(r, "thumbnail")
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_thumbnail", "Thumbnail file part is malformed")
		return
	}
	if thumb != nil {
		defer thumb.close()
		input.Thumbnail = &thumb.UploadPayload
	}

	asset, err := h.svc.CreateAsset(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, toAssetResponse(asset))
}

// List handles GET /v1/assets
func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	assets, err := h.svc.ListAssets(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := ListAssetsResponse{
		Assets: make([]AssetResponse, 0, len(assets)),
		Count:  len(assets),
	}
	for _, asset := range assets {
		resp.Assets = append(resp.Assets, toAssetResponse(asset))
	}

	JSON(w, http.StatusOK, resp)
}

// Get handles GET /v1/assets/{id}
func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	assetID, ok := assetIDParam(w, r)
	if !ok {
		return
	}

	asset, err := h.svc.GetAsset(r.Context(), assetID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toAssetResponse(asset))
}

// Update handles PUT /v1/assets/{id}
func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request) {
	assetID, ok := assetIDParam(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Request must be a multipart form within the upload size limit")
		return
	}
	defer r.MultipartForm.RemoveAll()

	var input usecase.UpdateAssetInput

	// Only fields present in the form are updated.
	input.Name = formValuePtr(r, "name")
	input.Description = formValuePtr(r, "description")
	input.Caption = formValuePtr(r, "caption")
	input.Transcript = formValuePtr(r, "transcript")

	if raw := formValuePtr(r, "category_id"); raw != nil {
		categoryID, err := strconv.ParseInt(*raw, 10, 64)
		if err != nil {
			Error(w, http.StatusBadRequest, "invalid_category_id", "Category ID must be an integer")
			return
		}
		input.CategoryID = &categoryID
	}

	video, err := filePayload(r, "video")
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_video", "Video file part is malformed")
		return
	}
	if video != nil {
		defer video.close()
		input.Video = &video.UploadPayload
	}

	thumb, err := filePayload(r, "thumbnail")
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_thumbnail", "Thumbnail file part is malformed")
		return
	}
	if thumb != nil {
		defer thumb.close()
		input.Thumbnail = &thumb.UploadPayload
	}

	asset, err := h.svc.UpdateAsset(r.Context(), assetID, input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toAssetResponse(asset))
}

// Delete handles DELETE /v1/assets/{id}
func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	assetID, ok := assetIDParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteAsset(r.Context(), assetID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AssetHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrAssetNotFound):
		Error(w, http.StatusNotFound, "asset_not_found", "Asset not found")
	case errors.Is(err, model.ErrEmptyName):
		Error(w, http.StatusBadRequest, "invalid_name", "Name cannot be empty")
	case errors.Is(err, model.ErrNameTooLong):
		Error(w, http.StatusBadRequest, "invalid_name", "Name exceeds maximum length")
	case errors.Is(err, model.ErrEmptyDescription):
		Error(w, http.StatusBadRequest, "invalid_description", "Description cannot be empty")
	case errors.Is(err, model.ErrMissingVideo):
		Error(w, http.StatusBadRequest, "missing_video", "Video file is required")
	case errors.Is(err, model.ErrMissingThumbnail):
		Error(w, http.StatusBadRequest, "missing_thumbnail", "Thumbnail file is required")
	case errors.Is(err, usecase.ErrBlobIO):
		Error(w, http.StatusInternalServerError, "storage_error", "Failed to store uploaded file")
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An internal error occurred")
	}
}

// uploadFile pairs an UploadPayload with the multipart file it reads from.
type uploadFile struct {
	usecase.UploadPayload
	file multipart.File
}

func (u *uploadFile) close() {
	u.file.Close()
}

// filePayload extracts the named file part. Returns nil, nil when the part
// is absent.
func filePayload(r *http.Request, field string) (*uploadFile, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	return &uploadFile{
		UploadPayload: usecase.UploadPayload{
			FileName: header.Filename,
			Content:  file,
		},
		file: file,
	}, nil
}

func formValuePtr(r *http.Request, field string) *string {
	values, ok := r.MultipartForm.Value[field]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func assetIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	assetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || assetID <= 0 {
		Error(w, http.StatusBadRequest, "invalid_asset_id", "Asset ID must be a positive integer")
		return 0, false
	}
	return assetID, true
}

func toAssetResponse(asset *model.Asset) AssetResponse {
	return AssetResponse{
		ID:          asset.ID,
		Name:        asset.Name,
		Description: asset.Description,
		Caption:     asset.Caption,
		Transcript:  asset.Transcript,
		CategoryID:  asset.CategoryID,
		VideoURL:    "/media/" + asset.VideoFile,
		ThumbURL:    "/media/" + asset.ThumbFile,
		CreatedAt:   asset.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   asset.UpdatedAt.Format(time.RFC3339),
	}
}
