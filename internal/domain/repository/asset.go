package repository

import (
	"context"

	"github.com/tkanda-dev/mediavault/internal/domain/model"
)

// AssetRepository defines the interface for asset metadata persistence.
// Implementations should be provided by the infrastructure layer (e.g., PostgreSQL).
// The repository owns only the metadata row; file bytes live in the BlobStore
// and the two are kept consistent by the usecase layer.
type AssetRepository interface {
	// Create persists a new asset row and assigns its surrogate id.
	Create(ctx context.Context, asset *model.Asset) error

	// GetByID retrieves an asset by its unique identifier.
	// Returns nil and ErrAssetNotFound if the asset does not exist.
	GetByID(ctx context.Context, id int64) (*model.Asset, error)

	// List retrieves all assets, most recently created first.
	List(ctx context.Context) ([]*model.Asset, error)

	// Update persists changes to an existing asset entity.
	// Returns ErrAssetNotFound if the asset does not exist.
	Update(ctx context.Context, asset *model.Asset) error

	// Delete removes an asset row.
	// Returns ErrAssetNotFound if the asset does not exist.
	Delete(ctx context.Context, id int64) error
}
