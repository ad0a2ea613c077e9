package repository

import "errors"

var (
	// ErrAssetNotFound is returned when an asset cannot be found.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrCategoryNotFound is returned when a category cannot be found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateEmail is returned when registering an account with an email
	// that is already taken.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrBlobNotFound is returned when a stored blob cannot be opened.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrBucketNotFound is returned when the configured object storage bucket
	// does not exist.
	ErrBucketNotFound = errors.New("bucket not found")
)
