package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/tkanda-dev/mediavault/internal/domain/model"
	"github.com/tkanda-dev/mediavault/internal/usecase"
)

// Request/Response types

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type CategoryResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type AddFavoriteRequest struct {
	UserID  int64 `json:"user_id"`
	AssetID int64 `json:"asset_id"`
}

type FavoriteResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	AssetID   int64  `json:"asset_id"`
	CreatedAt string `json:"created_at"`
}

type RateAssetRequest struct {
	AssetID int64 `json:"asset_id"`
	UserID  int64 `json:"user_id"`
	Score   int   `json:"score"`
}

type RatingResponse struct {
	ID        int64  `json:"id"`
	AssetID   int64  `json:"asset_id"`
	UserID    int64  `json:"user_id"`
	Score     int    `json:"score"`
	CreatedAt string `json:"created_at"`
}

// CatalogHandler handles category, favorite and rating HTTP requests.
type CatalogHandler struct {
	svc usecase.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(svc usecase.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// CreateCategory handles POST /v1/categories
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	category, err := h.svc.CreateCategory(r.Context(), req.Name)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, toCategoryResponse(category))
}

// ListCategories handles GET /v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		resp = append(resp, toCategoryResponse(category))
	}

	JSON(w, http.StatusOK, resp)
}

// AddFavorite handles POST /v1/favorites
func (h *CatalogHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var req AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	favorite, err := h.svc.AddFavorite(r.Context(), req.UserID, req.AssetID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, toFavoriteResponse(favorite))
}

// ListFavorites handles GET /v1/favorites
func (h *CatalogHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.svc.ListFavorites(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := make([]FavoriteResponse, 0, len(favorites))
	for _, favorite := range favorites {
		resp = append(resp, toFavoriteResponse(favorite))
	}

	JSON(w, http.StatusOK, resp)
}

// RateAsset handles POST /v1/ratings
func (h *CatalogHandler) RateAsset(w http.ResponseWriter, r *http.Request) {
	var req RateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	rating, err := h.svc.RateAsset(r.Context(), req.AssetID, req.UserID, req.Score)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, toRatingResponse(rating))
}

// ListRatings handles GET /v1/ratings
func (h *CatalogHandler) ListRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.svc.ListRatings(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := make([]RatingResponse, 0, len(ratings))
	for _, rating := range ratings {
		resp = append(resp, toRatingResponse(rating))
	}

	JSON(w, http.StatusOK, resp)
}

func (h *CatalogHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrEmptyCategoryName):
		Error(w, http.StatusBadRequest, "invalid_name", "Category name cannot be empty")
	case errors.Is(err, model.ErrInvalidScore):
		Error(w, http.StatusBadRequest, "invalid_score", "Score must be between 1 and 5")
	case errors.Is(err, model.ErrInvalidReference):
		Error(w, http.StatusBadRequest, "invalid_reference", "User and asset IDs must be positive integers")
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An internal error occurred")
	}
}

func toCategoryResponse(category *model.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt.Format(time.RFC3339),
	}
}

func toFavoriteResponse(favorite *model.Favorite) FavoriteResponse {
	return FavoriteResponse{
		ID:        favorite.ID,
		UserID:    favorite.UserID,
		AssetID:   favorite.AssetID,
		CreatedAt: favorite.CreatedAt.Format(time.RFC3339),
	}
}

func toRatingResponse(rating *model.Rating) RatingResponse {
	return RatingResponse{
		ID:        rating.ID,
		AssetID:   rating.AssetID,
		UserID:    rating.UserID,
		Score:     rating.Score,
		CreatedAt: rating.CreatedAt.Format(time.RFC3339),
	}
}
