package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tkanda-dev/mediavault/internal/domain/model"
	"github.com/tkanda-dev/mediavault/internal/domain/repository"
	"github.com/tkanda-dev/mediavault/internal/infrastructure/metrics"
)

var (
	// ErrBlobIO is returned when a blob write or read fails during an
	// asset operation. Any partial writes have been compensated.
	ErrBlobIO = errors.New("blob storage failure")

	// ErrPersistence is returned when a metadata write fails during an
	// asset operation.
	ErrPersistence = errors.New("metadata persistence failure")
)

// UploadPayload carries an uploaded file: its original client-side name
// (used only for the extension) and its content.
type UploadPayload struct {
	FileName string
	Content  io.Reader
}

// CreateAssetInput contains the input parameters for creating an asset.
// Video and Thumbnail are both required.
type CreateAssetInput struct {
	Name        string
	Description string
	Caption     string
	Transcript  string
	CategoryID  *int64
	Video       *UploadPayload
	Thumbnail   *UploadPayload
}

// UpdateAssetInput contains the input parameters for updating an asset.
// Nil fields keep their previous values; nil payloads keep the existing blobs.
type UpdateAssetInput struct {
	Name        *string
	Description *string
	Caption     *string
	Transcript  *string
	CategoryID  *int64
	Video       *UploadPayload
	Thumbnail   *UploadPayload
}

// AssetService defines the interface for asset business logic operations.
// It is the only component allowed to touch both the blob store and the
// metadata store within one logical operation, and it owns the invariant
// that a stored asset row always references existing blobs.
type AssetService interface {
	// CreateAsset stores both uploaded files and the metadata row.
	// If any step fails, earlier steps are rolled back: no row without
	// blobs, no blobs without a row.
	CreateAsset(ctx context.Context, input CreateAssetInput) (*model.Asset, error)

	// GetAsset retrieves asset metadata by ID.
	GetAsset(ctx context.Context, assetID int64) (*model.Asset, error)

	// ListAssets retrieves all assets, most recently created first.
	ListAssets(ctx context.Context) ([]*model.Asset, error)

	// UpdateAsset applies a partial update, replacing blobs only when a
	// new payload is supplied. Replaced blobs are deleted after the
	// metadata write succeeds.
	UpdateAsset(ctx context.Context, assetID int64, input UpdateAssetInput) (*model.Asset, error)

	// DeleteAsset removes the metadata row first, then the blobs.
	DeleteAsset(ctx context.Context, assetID int64) error
}

type assetService struct {
	repo  repository.AssetRepository
	blobs repository.BlobStore
	queue repository.CleanupQueue // optional; nil disables async cleanup

	locks *keyedLock
}

// NewAssetService creates a new AssetService instance.
// queue may be nil, in which case orphan candidates are only deleted
// synchronously (best effort) and never handed to the sweeper.
func NewAssetService(
	repo repository.AssetRepository,
	blobs repository.BlobStore,
	queue repository.CleanupQueue,
) AssetService {
	return &assetService{
		repo:  repo,
		blobs: blobs,
		queue: queue,
		locks: newKeyedLock(),
	}
}

// CreateAsset validates the input, writes both blobs, then inserts the
// metadata row. The ordering and its compensations guarantee that a failure
// at any step leaves neither a partial row nor stray blobs from this attempt.
func (s *assetService) CreateAsset(ctx context.Context, input CreateAssetInput) (*model.Asset, error) {
	asset, err := model.NewAsset(input.Name, input.Description, input.Caption, input.Transcript, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if input.Video == nil {
		return nil, model.ErrMissingVideo
	}
	if input.Thumbnail == nil {
		return nil, model.ErrMissingThumbnail
	}

	videoName, err := s.blobs.Put(ctx, input.Video.FileName, input.Video.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: put video: %v", ErrBlobIO, err)
	}

	thumbName, err := s.blobs.Put(ctx, input.Thumbnail.FileName, input.Thumbnail.Content)
	if err != nil {
		// Roll back the video blob so the failed attempt leaves nothing behind.
		s.compensate(ctx, "create", videoName)
		return nil, fmt.Errorf("%w: put thumbnail: %v", ErrBlobIO, err)
	}

	asset.SetFiles(videoName, thumbName)

	if err := s.repo.Create(ctx, asset); err != nil {
		s.compensate(ctx, "create", videoName, thumbName)
		return nil, fmt.Errorf("%w: insert asset: %v", ErrPersistence, err)
	}

	return asset, nil
}

// GetAsset retrieves asset metadata by ID.
func (s *assetService) GetAsset(ctx context.Context, assetID int64) (*model.Asset, error) {
	return s.repo.GetByID(ctx, assetID)
}

// ListAssets retrieves all assets, most recently created first.
func (s *assetService) ListAssets(ctx context.Context) ([]*model.Asset, error) {
	return s.repo.List(ctx)
}

// UpdateAsset applies a partial update under the asset's lock.
//
// Replacement blobs are written before anything is deleted, and the old
// blobs are removed only after the metadata row points at the new names.
// The only inconsistency any failure can produce is extra files on disk
// (the new blobs, if the metadata write fails), never a row referencing a
// missing file. Those extras are deleted best effort right away and also
// handed to the cleanup queue for the sweeper.
func (s *assetService) UpdateAsset(ctx context.Context, assetID int64, input UpdateAssetInput) (*model.Asset, error) {
	s.locks.Lock(assetID)
	defer s.locks.Unlock(assetID)

	asset, err := s.repo.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, model.ErrEmptyName
		}
		asset.Name = *input.Name
	}
	if input.Description != nil {
		if *input.Description == "" {
			return nil, model.ErrEmptyDescription
		}
		asset.Description = *input.Description
	}
	if input.Caption != nil {
		asset.Caption = *input.Caption
	}
	if input.Transcript != nil {
		asset.Transcript = *input.Transcript
	}
	if input.CategoryID != nil {
		asset.CategoryID = input.CategoryID
	}

	var replaced []string // old blobs to delete once metadata is durable
	var adopted []string  // new blobs to roll back if metadata fails

	if input.Video != nil {
		newName, err := s.blobs.Put(ctx, input.Video.FileName, input.Video.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: put replacement video: %v", ErrBlobIO, err)
		}
		replaced = append(replaced, asset.VideoFile)
		adopted = append(adopted, newName)
		asset.VideoFile = newName
	}

	if input.Thumbnail != nil {
		newName, err := s.blobs.Put(ctx, input.Thumbnail.FileName, input.Thumbnail.Content)
		if err != nil {
			s.compensate(ctx, "update", adopted...)
			return nil, fmt.Errorf("%w: put replacement thumbnail: %v", ErrBlobIO, err)
		}
		replaced = append(replaced, asset.ThumbFile)
		adopted = append(adopted, newName)
		asset.ThumbFile = newName
	}

	if err := s.repo.Update(ctx, asset); err != nil {
		s.compensate(ctx, "update", adopted...)
		s.enqueueCleanup(ctx, assetID, adopted, "update metadata write failed")
		if errors.Is(err, repository.ErrAssetNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: update asset: %v", ErrPersistence, err)
	}

	// Metadata now points at the new names; the old blobs are unreferenced.
	s.deleteBestEffort(ctx, assetID, replaced...)

	return asset, nil
}

// DeleteAsset removes the metadata row first, then the blobs. A crash (or
// blob-delete failure) between the two steps leaves orphaned-but-harmless
// files, never a surviving row referencing missing files.
func (s *assetService) DeleteAsset(ctx context.Context, assetID int64) error {
	s.locks.Lock(assetID)
	defer s.locks.Unlock(assetID)

	asset, err := s.repo.GetByID(ctx, assetID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, assetID); err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			return err
		}
		return fmt.Errorf("%w: delete asset: %v", ErrPersistence, err)
	}

	s.deleteBestEffort(ctx, assetID, asset.VideoFile, asset.ThumbFile)

	return nil
}

// compensate rolls back blobs written earlier in a failed multi-step
// operation. Failures are logged, not raised: blob delete is idempotent
// and residual files are reconciled by the sweeper.
func (s *assetService) compensate(ctx context.Context, operation string, storedNames ...string) {
	for _, name := range storedNames {
		if err := s.blobs.Delete(ctx, name); err != nil {
			slog.Warn("compensating blob delete failed",
				"operation", operation,
				"stored_name", name,
				"error", err,
			)
		}
	}
	metrics.CompensationsTotal.WithLabelValues(operation).Inc()
}

// deleteBestEffort removes blobs that are no longer referenced by any row.
func (s *assetService) deleteBestEffort(ctx context.Context, assetID int64, storedNames ...string) {
	for _, name := range storedNames {
		if err := s.blobs.Delete(ctx, name); err != nil {
			slog.Warn("blob delete failed",
				"asset_id", assetID,
				"stored_name", name,
				"error", err,
			)
		}
	}
}

// enqueueCleanup hands orphan candidates to the sweeper. Skipped when no
// queue is configured; failures are logged since cleanup is advisory.
func (s *assetService) enqueueCleanup(ctx context.Context, assetID int64, storedNames []string, reason string) {
	if s.queue == nil || len(storedNames) == 0 {
		return
	}

	task := repository.CleanupTask{
		AssetID:     assetID,
		StoredNames: storedNames,
		Reason:      reason,
	}
	if err := s.queue.PublishCleanupTask(ctx, task); err != nil {
		metrics.CleanupTasksTotal.WithLabelValues(metrics.CleanupError).Inc()
		slog.Warn("failed to publish cleanup task",
			"asset_id", assetID,
			"error", err,
		)
		return
	}
	metrics.CleanupTasksTotal.WithLabelValues(metrics.CleanupPublished).Inc()
}
