package usecase

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tkanda-dev/mediavault/internal/domain/model"
	"github.com/tkanda-dev/mediavault/internal/infrastructure/cache"
	"github.com/tkanda-dev/mediavault/internal/infrastructure/metrics"
)

// CachedAssetServiceConfig holds configuration for CachedAssetService.
type CachedAssetServiceConfig struct {
	// CacheTTL is the TTL for cached asset metadata.
	CacheTTL time.Duration
}

// DefaultCachedAssetServiceConfig returns the default configuration.
func DefaultCachedAssetServiceConfig() CachedAssetServiceConfig {
	return CachedAssetServiceConfig{
		CacheTTL: 5 * time.Minute,
	}
}

// cachedAssetService wraps AssetService with caching for single-asset reads.
// It implements the decorator pattern to add caching without modifying the
// original service. Writes invalidate before delegating so a stale entry is
// never served past the mutation.
type cachedAssetService struct {
	delegate AssetService
	cache    cache.AssetCache
	sfGroup  singleflight.Group

	cacheTTL time.Duration
}

// NewCachedAssetService creates a new CachedAssetService wrapping the provided AssetService.
func NewCachedAssetService(
	delegate AssetService,
	assetCache cache.AssetCache,
	cfg CachedAssetServiceConfig,
) AssetService {
	return &cachedAssetService{
		delegate: delegate,
		cache:    assetCache,
		cacheTTL: cfg.CacheTTL,
	}
}

// CreateAsset delegates to the underlying service.
// No caching for create operations - the asset is immediately returned.
func (s *cachedAssetService) CreateAsset(ctx context.Context, input CreateAssetInput) (*model.Asset, error) {
	return s.delegate.CreateAsset(ctx, input)
}

// GetAsset retrieves asset metadata with caching.
// Uses singleflight to prevent cache stampede on concurrent requests for the same asset.
func (s *cachedAssetService) GetAsset(ctx context.Context, assetID int64) (*model.Asset, error) {
	key := cacheKey(assetID)
	result, err, shared := s.sfGroup.Do(key, func() (any, error) {
		return s.getAssetWithCache(ctx, assetID)
	})

	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		return nil, err
	}

	return result.(*model.Asset), nil
}

// ListAssets delegates to the underlying service. The full listing is not
// cached: it changes on every create/delete and is served straight from the
// indexed query.
func (s *cachedAssetService) ListAssets(ctx context.Context) ([]*model.Asset, error) {
	return s.delegate.ListAssets(ctx)
}

// UpdateAsset invalidates the cache and delegates to the underlying service.
func (s *cachedAssetService) UpdateAsset(ctx context.Context, assetID int64, input UpdateAssetInput) (*model.Asset, error) {
	s.invalidate(ctx, assetID)
	return s.delegate.UpdateAsset(ctx, assetID, input)
}

// DeleteAsset invalidates the cache and delegates to the underlying service.
func (s *cachedAssetService) DeleteAsset(ctx context.Context, assetID int64) error {
	s.invalidate(ctx, assetID)
	return s.delegate.DeleteAsset(ctx, assetID)
}

// getAssetWithCache implements the cache-aside pattern.
func (s *cachedAssetService) getAssetWithCache(ctx context.Context, assetID int64) (*model.Asset, error) {
	asset, err := s.cache.Get(ctx, assetID)
	if err != nil {
		// Log cache error but continue to database
		slog.Warn("cache get failed, falling back to database",
			"asset_id", assetID,
			"error", err,
		)
	}

	if asset != nil {
		return asset, nil // Cache hit
	}

	// Cache miss - fetch from database
	asset, err = s.delegate.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, asset, s.cacheTTL); err != nil {
		slog.Warn("failed to cache asset",
			"asset_id", assetID,
			"error", err,
		)
	}

	return asset, nil
}

func (s *cachedAssetService) invalidate(ctx context.Context, assetID int64) {
	if err := s.cache.Delete(ctx, assetID); err != nil {
		// Log but don't fail - cache invalidation failure is non-critical
		slog.Warn("failed to invalidate asset cache",
			"asset_id", assetID,
			"error", err,
		)
	}
}

func cacheKey(assetID int64) string {
	return "asset:" + strconv.FormatInt(assetID, 10)
}
