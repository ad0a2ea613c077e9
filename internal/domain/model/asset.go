package model

import (
	"errors"
	"time"
)

// Asset represents an uploaded media asset: a primary video file plus a
// thumbnail, with descriptive metadata. The filename fields hold stored blob
// names, not original upload names.
type Asset struct {
	ID          int64
	Name        string
	Description string
	Caption     string
	Transcript  string
	CategoryID  *int64
	VideoFile   string
	ThumbFile   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var (
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrNameTooLong      = errors.New("name exceeds maximum length of 255 characters")
	ErrMissingVideo     = errors.New("video file is required")
	ErrMissingThumbnail = errors.New("thumbnail file is required")
)

const maxNameLength = 255

// NewAsset creates a new Asset with validated required fields. The blob
// filenames are assigned later by the coordinator, after the files have been
// written to the blob store.
func NewAsset(name, description, caption, transcript string, categoryID *int64) (*Asset, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > maxNameLength {
		return nil, ErrNameTooLong
	}
	if description == "" {
		return nil, ErrEmptyDescription
	}

	now := time.Now()
	return &Asset{
		Name:        name,
		Description: description,
		Caption:     caption,
		Transcript:  transcript,
		CategoryID:  categoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// SetFiles records the stored blob names for the asset's video and thumbnail.
func (a *Asset) SetFiles(videoFile, thumbFile string) {
	a.VideoFile = videoFile
	a.ThumbFile = thumbFile
	a.UpdatedAt = time.Now()
}
