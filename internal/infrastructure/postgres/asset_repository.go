package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tkanda-dev/mediavault/internal/domain/model"
	"github.com/tkanda-dev/mediavault/internal/domain/repository"
	"github.com/tkanda-dev/mediavault/internal/infrastructure/metrics"
)

// DBTX is an interface that abstracts pgxpool.Pool and pgx.Tx for testability.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AssetRepository implements repository.AssetRepository using PostgreSQL.
type AssetRepository struct {
	db DBTX
}

// NewAssetRepository creates a new AssetRepository instance.
func NewAssetRepository(db DBTX) *AssetRepository {
	return &AssetRepository{db: db}
}

// Create persists a new asset row. The surrogate id is assigned by the
// database and written back to the entity.
func (r *AssetRepository) Create(ctx context.Context, asset *model.Asset) error {
	const query = `
		INSERT INTO assets (name, description, caption, transcript, category_id, video_file, thumb_file, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		asset.Name,
		asset.Description,
		nullString(asset.Caption),
		nullString(asset.Transcript),
		asset.CategoryID,
		asset.VideoFile,
		asset.ThumbFile,
		asset.CreatedAt,
		asset.UpdatedAt,
	).Scan(&asset.ID)
	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryInsert, metrics.TableAssets).Inc()
	return nil
}

// GetByID retrieves an asset by its unique identifier.
func (r *AssetRepository) GetByID(ctx context.Context, id int64) (*model.Asset, error) {
	const query = `
		SELECT id, name, description, caption, transcript, category_id, video_file, thumb_file, created_at, updated_at
		FROM assets
		WHERE id = $1
	`

	asset, err := scanAsset(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to get asset by ID: %w", err)
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableAssets).Inc()
	return asset, nil
}

// List retrieves all assets, most recently created first.
func (r *AssetRepository) List(ctx context.Context) ([]*model.Asset, error) {
	const query = `
		SELECT id, name, description, caption, transcript, category_id, video_file, thumb_file, created_at, updated_at
		FROM assets
		ORDER BY id DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	var assets []*model.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, asset)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assets: %w", err)
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableAssets).Inc()
	return assets, nil
}

// Update persists changes to an existing asset entity.
func (r *AssetRepository) Update(ctx context.Context, asset *model.Asset) error {
	const query = `
		UPDATE assets
		SET name = $2, description = $3, caption = $4, transcript = $5, category_id = $6, video_file = $7, thumb_file = $8, updated_at = $9
		WHERE id = $1
	`

	asset.UpdatedAt = time.Now()

	tag, err := r.db.Exec(ctx, query,
		asset.ID,
		asset.Name,
		asset.Description,
		nullString(asset.Caption),
		nullString(asset.Transcript),
		asset.CategoryID,
		asset.VideoFile,
		asset.ThumbFile,
		asset.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrAssetNotFound
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryUpdate, metrics.TableAssets).Inc()
	return nil
}

// Delete removes an asset row.
func (r *AssetRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM assets WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrAssetNotFound
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryDelete, metrics.TableAssets).Inc()
	return nil
}

// scanAsset scans a single row into an Asset model.
// Works for both pgx.Row and pgx.Rows since both expose Scan.
func scanAsset(row pgx.Row) (*model.Asset, error) {
	var (
		asset      model.Asset
		caption    *string
		transcript *string
	)

	err := row.Scan(
		&asset.ID,
		&asset.Name,
		&asset.Description,
		&caption,
		&transcript,
		&asset.CategoryID,
		&asset.VideoFile,
		&asset.ThumbFile,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if caption != nil {
		asset.Caption = *caption
	}
	if transcript != nil {
		asset.Transcript = *transcript
	}

	return &asset, nil
}

// nullString returns nil for empty strings, otherwise returns a pointer to the string.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Compile-time verification that AssetRepository implements repository.AssetRepository.
var _ repository.AssetRepository = (*AssetRepository)(nil)
