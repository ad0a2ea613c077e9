package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/tkanda-dev/mediavault/internal/domain/model"
	"github.com/tkanda-dev/mediavault/internal/domain/repository"
)

// CatalogService defines the interface for category, favorite and rating
// operations. These are plain metadata rows with no blob involvement.
type CatalogService interface {
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)

	AddFavorite(ctx context.Context, userID, assetID int64) (*model.Favorite, error)
	ListFavorites(ctx context.Context) ([]*model.Favorite, error)

	RateAsset(ctx context.Context, assetID, userID int64, score int) (*model.Rating, error)
	ListRatings(ctx context.Context) ([]*model.Rating, error)
}

type catalogService struct {
	categories repository.CategoryRepository
	favorites  repository.FavoriteRepository
	ratings    repository.RatingRepository
}

// NewCatalogService creates a new CatalogService instance.
func NewCatalogService(
	categories repository.CategoryRepository,
	favorites repository.FavoriteRepository,
	ratings repository.RatingRepository,
) CatalogService {
	return &catalogService{
		categories: categories,
		favorites:  favorites,
		ratings:    ratings,
	}
}

func (s *catalogService) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	if name == "" {
		return nil, model.ErrEmptyCategoryName
	}

	category := &model.Category{
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("%w: insert category: %v", ErrPersistence, err)
	}
	return category, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.categories.List(ctx)
}

func (s *catalogService) AddFavorite(ctx context.Context, userID, assetID int64) (*model.Favorite, error) {
	favorite, err := model.NewFavorite(userID, assetID)
	if err != nil {
		return nil, err
	}
	if err := s.favorites.Create(ctx, favorite); err != nil {
		return nil, fmt.Errorf("%w: insert favorite: %v", ErrPersistence, err)
	}
	return favorite, nil
}

func (s *catalogService) ListFavorites(ctx context.Context) ([]*model.Favorite, error) {
	return s.favorites.List(ctx)
}

func (s *catalogService) RateAsset(ctx context.Context, assetID, userID int64, score int) (*model.Rating, error) {
	rating, err := model.NewRating(assetID, userID, score)
	if err != nil {
		return nil, err
	}
	if err := s.ratings.Create(ctx, rating); err != nil {
		return nil, fmt.Errorf("%w: insert rating: %v", ErrPersistence, err)
	}
	return rating, nil
}

func (s *catalogService) ListRatings(ctx context.Context) ([]*model.Rating, error) {
	return s.ratings.List(ctx)
}
