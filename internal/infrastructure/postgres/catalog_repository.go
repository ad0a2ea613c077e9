package postgres

import (
	"context"
	"fmt"

	"github.com/tkanda-dev/mediavault/internal/domain/model"
	"github.com/tkanda-dev/mediavault/internal/domain/repository"
	"github.com/tkanda-dev/mediavault/internal/infrastructure/metrics"
)

// CategoryRepository implements repository.CategoryRepository using PostgreSQL.
type CategoryRepository struct {
	db DBTX
}

func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	const query = `INSERT INTO categories (name, created_at) VALUES ($1, $2) RETURNING id`

	err := r.db.QueryRow(ctx, query, category.Name, category.CreatedAt).Scan(&category.ID)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryInsert, metrics.TableCategories).Inc()
	return nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	const query = `SELECT id, name, created_at FROM categories ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []*model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableCategories).Inc()
	return categories, nil
}

// FavoriteRepository implements repository.FavoriteRepository using PostgreSQL.
type FavoriteRepository struct {
	db DBTX
}

func NewFavoriteRepository(db DBTX) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Create(ctx context.Context, favorite *model.Favorite) error {
	const query = `INSERT INTO favorites (user_id, asset_id, created_at) VALUES ($1, $2, $3) RETURNING id`

	err := r.db.QueryRow(ctx, query, favorite.UserID, favorite.AssetID, favorite.CreatedAt).Scan(&favorite.ID)
	if err != nil {
		return fmt.Errorf("failed to create favorite: %w", err)
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryInsert, metrics.TableFavorites).Inc()
	return nil
}

func (r *FavoriteRepository) List(ctx context.Context) ([]*model.Favorite, error) {
	const query = `SELECT id, user_id, asset_id, created_at FROM favorites ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	var favorites []*model.Favorite
	for rows.Next() {
		var f model.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.AssetID, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorites: %w", err)
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableFavorites).Inc()
	return favorites, nil
}

// RatingRepository implements repository.RatingRepository using PostgreSQL.
type RatingRepository struct {
	db DBTX
}

func NewRatingRepository(db DBTX) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) Create(ctx context.Context, rating *model.Rating) error {
	const query = `INSERT INTO ratings (asset_id, user_id, score, created_at) VALUES ($1, $2, $3, $4) RETURNING id`

	err := r.db.QueryRow(ctx, query, rating.AssetID, rating.UserID, rating.Score, rating.CreatedAt).Scan(&rating.ID)
	if err != nil {
		return fmt.Errorf("failed to create rating: %w", err)
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryInsert, metrics.TableRatings).Inc()
	return nil
}

func (r *RatingRepository) List(ctx context.Context) ([]*model.Rating, error) {
	const query = `SELECT id, asset_id, user_id, score, created_at FROM ratings ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []*model.Rating
	for rows.Next() {
		var rt model.Rating
		if err := rows.Scan(&rt.ID, &rt.AssetID, &rt.UserID, &rt.Score, &rt.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, &rt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ratings: %w", err)
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableRatings).Inc()
	return ratings, nil
}

var (
	_ repository.CategoryRepository = (*CategoryRepository)(nil)
	_ repository.FavoriteRepository = (*FavoriteRepository)(nil)
	_ repository.RatingRepository   = (*RatingRepository)(nil)
)
