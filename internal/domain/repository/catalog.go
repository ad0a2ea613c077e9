package repository

import (
	"context"

	"github.com/tkanda-dev/mediavault/internal/domain/model"
)

// CategoryRepository defines the interface for category persistence.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	List(ctx context.Context) ([]*model.Category, error)
}

// FavoriteRepository defines the interface for user-asset favorite links.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *model.Favorite) error
	List(ctx context.Context) ([]*model.Favorite, error)
}

// RatingRepository defines the interface for asset ratings.
type RatingRepository interface {
	Create(ctx context.Context, rating *model.Rating) error
	List(ctx context.Context) ([]*model.Rating, error)
}
