package model

import (
	"errors"
	"time"
)

// Category groups assets for browsing. Assets reference categories by id;
// the reference is best-effort, not enforced transactionally.
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Favorite links a user account to an asset.
type Favorite struct {
	ID        int64
	UserID    int64
	AssetID   int64
	CreatedAt time.Time
}

// Rating records a user's score for an asset.
type Rating struct {
	ID        int64
	AssetID   int64
	UserID    int64
	Score     int
	CreatedAt time.Time
}

var (
	ErrEmptyCategoryName = errors.New("category name cannot be empty")
	ErrInvalidScore      = errors.New("score must be between 1 and 5")
	ErrInvalidReference  = errors.New("referenced id must be positive")
)

// NewRating validates and builds a Rating.
func NewRating(assetID, userID int64, score int) (*Rating, error) {
	if assetID <= 0 || userID <= 0 {
		return nil, ErrInvalidReference
	}
	if score < 1 || score > 5 {
		return nil, ErrInvalidScore
	}
	return &Rating{
		AssetID:   assetID,
		UserID:    userID,
		Score:     score,
		CreatedAt: time.Now(),
	}, nil
}

// NewFavorite validates and builds a Favorite.
func NewFavorite(userID, assetID int64) (*Favorite, error) {
	if userID <= 0 || assetID <= 0 {
		return nil, ErrInvalidReference
	}
	return &Favorite{
		UserID:    userID,
		AssetID:   assetID,
		CreatedAt: time.Now(),
	}, nil
}
