package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tkanda-dev/mediavault/internal/domain/model"
	"github.com/tkanda-dev/mediavault/internal/domain/repository"
	"github.com/tkanda-dev/mediavault/internal/usecase"
)

// Mock AssetService

type mockAssetService struct {
	createAssetFn func(ctx context.Context, input usecase.CreateAssetInput) (*model.Asset, error)
	getAssetFn    func(ctx context.Context, assetID int64) (*model.Asset, error)
	listAssetsFn  func(ctx context.Context) ([]*model.Asset, error)
	updateAssetFn func(ctx context.Context, assetID int64, input usecase.UpdateAssetInput) (*model.Asset, error)
	deleteAssetFn func(ctx context.Context, assetID int64) error
}

func (m *mockAssetService) CreateAsset(ctx context.Context, input usecase.CreateAssetInput) (*model.Asset, error) {
	if m.createAssetFn != nil {
		return m.createAssetFn(ctx, input)
	}
	return nil, nil
}

func (m *mockAssetService) GetAsset(ctx context.Context, assetID int64) (*model.Asset, error) {
	if m.getAssetFn != nil {
		return m.getAssetFn(ctx, assetID)
	}
	return nil, repository.ErrAssetNotFound
}

func (m *mockAssetService) ListAssets(ctx context.Context) ([]*model.Asset, error) {
	if m.listAssetsFn != nil {
		return m.listAssetsFn(ctx)
	}
	return nil, nil
}

func (m *mockAssetService) UpdateAsset(ctx context.Context, assetID int64, input usecase.UpdateAssetInput) (*model.Asset, error) {
	if m.updateAssetFn != nil {
		return m.updateAssetFn(ctx, assetID, input)
	}
	return nil, repository.ErrAssetNotFound
}

func (m *mockAssetService) DeleteAsset(ctx context.Context, assetID int64) error {
	if m.deleteAssetFn != nil {
		return m.deleteAssetFn(ctx, assetID)
	}
	return nil
}

const testMaxUpload = 64 << 20

func sampleAsset() *model.Asset {
	return &model.Asset{
		ID:          42,
		Name:        "Launch trailer",
		Description: "The launch trailer",
		VideoFile:   "1700000000000-aaaa.mp4",
		ThumbFile:   "1700000000000-bbbb.jpg",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// multipartBody builds a multipart form with the given fields and files.
func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			t.Fatalf("write field %s: %v", name, err)
		}
	}
	for name, filename := range files {
		fw, err := mw.CreateFormFile(name, filename)
		if err != nil {
			t.Fatalf("create file part %s: %v", name, err)
		}
		if _, err := io.WriteString(fw, "content of "+filename); err != nil {
			t.Fatalf("write file part %s: %v", name, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func newAssetRouter(svc usecase.AssetService) chi.Router {
	h := NewAssetHandler(svc, testMaxUpload)
	r := chi.NewRouter()
	r.Post("/v1/assets", h.Create)
	r.Get("/v1/assets", h.List)
	r.Get("/v1/assets/{id}", h.Get)
	r.Put("/v1/assets/{id}", h.Update)
	r.Delete("/v1/assets/{id}", h.Delete)
	return r
}

func TestAssetHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var got usecase.CreateAssetInput
		svc := &mockAssetService{
			createAssetFn: func(ctx context.Context, input usecase.CreateAssetInput) (*model.Asset, error) {
				got = input
				return sampleAsset(), nil
			},
		}

		body, contentType := multipartBody(t,
			map[string]string{
				"name":        "Launch trailer",
				"description": "The launch trailer",
				"category_id": "7",
			},
			map[string]string{
				"video":     "trailer.mp4",
				"thumbnail": "trailer.jpg",
			},
		)
		req := httptest.NewRequest(http.MethodPost, "/v1/assets", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		newAssetRouter(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		if got.Name != "Launch trailer" {
			t.Errorf("Name = %q", got.Name)
		}
		if got.CategoryID == nil || *got.CategoryID != 7 {
			t.Error("CategoryID not forwarded")
		}
		if got.Video == nil || got.Video.FileName != "trailer.mp4" {
			t.Error("video payload not forwarded")
		}
		if got.Thumbnail == nil || got.Thumbnail.FileName != "trailer.jpg" {
			t.Error("thumbnail payload not forwarded")
		}

		var resp AssetResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if resp.VideoURL != "/media/1700000000000-aaaa.mp4" {
			t.Errorf("VideoURL = %q", resp.VideoURL)
		}
	})

	t.Run("MissingVideoMapsTo400", func(t *testing.T) {
		svc := &mockAssetService{
			createAssetFn: func(ctx context.Context, input usecase.CreateAssetInput) (*model.Asset, error) {
				return nil, model.ErrMissingVideo
			},
		}

		body, contentType := multipartBody(t,
			map[string]string{"name": "x", "description": "y"},
			map[string]string{"thumbnail": "t.jpg"},
		)
		req := httptest.NewRequest(http.MethodPost, "/v1/assets", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		newAssetRouter(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("NonMultipartRejected", func(t *testing.T) {
		svc := &mockAssetService{}
		req := httptest.NewRequest(http.MethodPost, "/v1/assets", bytes.NewBufferString(`{"name":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		newAssetRouter(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("BlobFailureMapsTo500", func(t *testing.T) {
		svc := &mockAssetService{
			createAssetFn: func(ctx context.Context, input usecase.CreateAssetInput) (*model.Asset, error) {
				return nil, usecase.ErrBlobIO
			},
		}

		body, contentType := multipartBody(t,
			map[string]string{"name": "x", "description": "y"},
			map[string]string{"video": "v.mp4", "thumbnail": "t.jpg"},
		)
		req := httptest.NewRequest(http.MethodPost, "/v1/assets", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		newAssetRouter(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
		}
	})
}

func TestAssetHandler_Get(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		setupMock      func(m *mockAssetService)
		wantStatusCode int
	}{
		{
			name:   "found",
			target: "/v1/assets/42",
			setupMock: func(m *mockAssetService) {
				m.getAssetFn = func(ctx context.Context, assetID int64) (*model.Asset, error) {
					return sampleAsset(), nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "not found",
			target:         "/v1/assets/999",
			setupMock:      func(m *mockAssetService) {},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "non-numeric id",
			target:         "/v1/assets/abc",
			setupMock:      func(m *mockAssetService) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "negative id",
			target:         "/v1/assets/-1",
			setupMock:      func(m *mockAssetService) {},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAssetService{}
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			newAssetRouter(svc).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatusCode)
			}
		})
	}
}

func TestAssetHandler_List(t *testing.T) {
	svc := &mockAssetService{
		listAssetsFn: func(ctx context.Context) ([]*model.Asset, error) {
			return []*model.Asset{sampleAsset()}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/assets", nil)
	rec := httptest.NewRecorder()
	newAssetRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var resp ListAssetsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Count != 1 || len(resp.Assets) != 1 {
		t.Errorf("count = %d, assets = %d", resp.Count, len(resp.Assets))
	}
}

func TestAssetHandler_Update(t *testing.T) {
	t.Run("PartialFieldsOnly", func(t *testing.T) {
		var got usecase.UpdateAssetInput
		svc := &mockAssetService{
			updateAssetFn: func(ctx context.Context, assetID int64, input usecase.UpdateAssetInput) (*model.Asset, error) {
				got = input
				return sampleAsset(), nil
			},
		}

		body, contentType := multipartBody(t,
			map[string]string{"name": "Renamed"},
			nil,
		)
		req := httptest.NewRequest(http.MethodPut, "/v1/assets/42", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		newAssetRouter(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		if got.Name == nil || *got.Name != "Renamed" {
			t.Error("Name not forwarded")
		}
		if got.Description != nil || got.Caption != nil || got.Transcript != nil || got.CategoryID != nil {
			t.Error("absent fields must stay nil")
		}
		if got.Video != nil || got.Thumbnail != nil {
			t.Error("absent files must stay nil")
		}
	})

	t.Run("VideoReplacement", func(t *testing.T) {
		var got usecase.UpdateAssetInput
		svc := &mockAssetService{
			updateAssetFn: func(ctx context.Context, assetID int64, input usecase.UpdateAssetInput) (*model.Asset, error) {
				got = input
				return sampleAsset(), nil
			},
		}

		body, contentType := multipartBody(t, nil, map[string]string{"video": "v2.mp4"})
		req := httptest.NewRequest(http.MethodPut, "/v1/assets/42", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		newAssetRouter(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if got.Video == nil || got.Video.FileName != "v2.mp4" {
			t.Error("video payload not forwarded")
		}
		if got.Thumbnail != nil {
			t.Error("thumbnail must stay nil")
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := &mockAssetService{}
		body, contentType := multipartBody(t, map[string]string{"name": "x"}, nil)
		req := httptest.NewRequest(http.MethodPut, "/v1/assets/999", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		newAssetRouter(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestAssetHandler_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &mockAssetService{
			deleteAssetFn: func(ctx context.Context, assetID int64) error {
				if assetID != 42 {
					t.Errorf("assetID = %d, want 42", assetID)
				}
				return nil
			},
		}

		req := httptest.NewRequest(http.MethodDelete, "/v1/assets/42", nil)
		rec := httptest.NewRecorder()
		newAssetRouter(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := &mockAssetService{
			deleteAssetFn: func(ctx context.Context, assetID int64) error {
				return repository.ErrAssetNotFound
			},
		}

		req := httptest.NewRequest(http.MethodDelete, "/v1/assets/999", nil)
		rec := httptest.NewRecorder()
		newAssetRouter(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}
