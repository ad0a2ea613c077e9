package model

import (
	"errors"
	"strings"
	"testing"
)

func TestNewAsset(t *testing.T) {
	categoryID := int64(3)

	tests := []struct {
		name        string
		assetName   string
		description string
		caption     string
		transcript  string
		categoryID  *int64
		wantErr     error
	}{
		{
			name:        "valid asset with all fields",
			assetName:   "Intro",
			description: "An introduction video",
			caption:     "hello",
			transcript:  "hello everyone",
			categoryID:  &categoryID,
			wantErr:     nil,
		},
		{
			name:        "valid asset with only required fields",
			assetName:   "Intro",
			description: "An introduction video",
			wantErr:     nil,
		},
		{
			name:        "empty name",
			assetName:   "",
			description: "An introduction video",
			wantErr:     ErrEmptyName,
		},
		{
			name:        "empty description",
			assetName:   "Intro",
			description: "",
			wantErr:     ErrEmptyDescription,
		},
		{
			name:        "name too long",
			assetName:   strings.Repeat("a", 256),
			description: "An introduction video",
			wantErr:     ErrNameTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset, err := NewAsset(tt.assetName, tt.description, tt.caption, tt.transcript, tt.categoryID)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if asset.Name != tt.assetName {
				t.Errorf("Name = %q, want %q", asset.Name, tt.assetName)
			}
			if asset.Description != tt.description {
				t.Errorf("Description = %q, want %q", asset.Description, tt.description)
			}
			if tt.categoryID != nil && (asset.CategoryID == nil || *asset.CategoryID != *tt.categoryID) {
				t.Errorf("CategoryID = %v, want %v", asset.CategoryID, *tt.categoryID)
			}
			if asset.CreatedAt.IsZero() || asset.UpdatedAt.IsZero() {
				t.Error("expected timestamps to be set")
			}
		})
	}
}

func TestAsset_SetFiles(t *testing.T) {
	asset, err := NewAsset("Intro", "desc", "", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := asset.UpdatedAt
	asset.SetFiles("1700000000000-abcd1234.mp4", "1700000000000-ef567890.jpg")

	if asset.VideoFile != "1700000000000-abcd1234.mp4" {
		t.Errorf("VideoFile = %q", asset.VideoFile)
	}
	if asset.ThumbFile != "1700000000000-ef567890.jpg" {
		t.Errorf("ThumbFile = %q", asset.ThumbFile)
	}
	if asset.UpdatedAt.Before(before) {
		t.Error("expected UpdatedAt to advance")
	}
}

func TestNewRating(t *testing.T) {
	tests := []struct {
		name    string
		assetID int64
		userID  int64
		score   int
		wantErr error
	}{
		{name: "valid rating", assetID: 1, userID: 2, score: 5},
		{name: "score too low", assetID: 1, userID: 2, score: 0, wantErr: ErrInvalidScore},
		{name: "score too high", assetID: 1, userID: 2, score: 6, wantErr: ErrInvalidScore},
		{name: "missing asset id", assetID: 0, userID: 2, score: 3, wantErr: ErrInvalidReference},
		{name: "missing user id", assetID: 1, userID: 0, score: 3, wantErr: ErrInvalidReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rating, err := NewRating(tt.assetID, tt.userID, tt.score)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rating.Score != tt.score {
				t.Errorf("Score = %d, want %d", rating.Score, tt.score)
			}
		})
	}
}
