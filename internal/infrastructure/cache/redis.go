package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tkanda-dev/mediavault/internal/domain/model"
	"github.com/tkanda-dev/mediavault/internal/infrastructure/metrics"
)

const (
	// assetCacheKeyPrefix is the prefix for asset cache keys in Redis.
	assetCacheKeyPrefix = "asset:"
)

// assetJSON is the JSON representation of an Asset for caching.
// Using an explicit struct avoids coupling to the domain model's fields.
type assetJSON struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Caption     string `json:"caption"`
	Transcript  string `json:"transcript"`
	CategoryID  *int64 `json:"category_id"`
	VideoFile   string `json:"video_file"`
	ThumbFile   string `json:"thumb_file"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// RedisAssetCache implements AssetCache using Redis as the backing store.
type RedisAssetCache struct {
	client *redis.Client
}

// NewRedisAssetCache creates a new Redis-backed asset cache.
func NewRedisAssetCache(client *redis.Client) *RedisAssetCache {
	return &RedisAssetCache{
		client: client,
	}
}

// Get retrieves an asset from Redis cache.
// Returns nil, nil on cache miss.
func (c *RedisAssetCache) Get(ctx context.Context, assetID int64) (*model.Asset, error) {
	key := c.buildKey(assetID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss).Inc()
			return nil, nil // Cache miss
		}
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError).Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	asset, err := c.deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("deserialize asset: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit).Inc()
	return asset, nil
}

// Set stores an asset in Redis cache with the specified TTL.
func (c *RedisAssetCache) Set(ctx context.Context, asset *model.Asset, ttl time.Duration) error {
	key := c.buildKey(asset.ID)

	data, err := c.serialize(asset)
	if err != nil {
		return fmt.Errorf("serialize asset: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusError).Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusSuccess).Inc()
	return nil
}

// Delete removes an asset from Redis cache.
func (c *RedisAssetCache) Delete(ctx context.Context, assetID int64) error {
	key := c.buildKey(assetID)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusError).Inc()
		return fmt.Errorf("redis del: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusSuccess).Inc()
	return nil
}

// buildKey constructs the Redis key for an asset.
func (c *RedisAssetCache) buildKey(assetID int64) string {
	return assetCacheKeyPrefix + strconv.FormatInt(assetID, 10)
}

// serialize converts an Asset to JSON bytes.
func (c *RedisAssetCache) serialize(asset *model.Asset) ([]byte, error) {
	a := assetJSON{
		ID:          asset.ID,
		Name:        asset.Name,
		Description: asset.Description,
		Caption:     asset.Caption,
		Transcript:  asset.Transcript,
		CategoryID:  asset.CategoryID,
		VideoFile:   asset.VideoFile,
		ThumbFile:   asset.ThumbFile,
		CreatedAt:   asset.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:   asset.UpdatedAt.Format(time.RFC3339Nano),
	}
	return json.Marshal(a)
}

// deserialize converts JSON bytes to an Asset.
func (c *RedisAssetCache) deserialize(data []byte) (*model.Asset, error) {
	var a assetJSON
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, err
	}

	createdAt, err := time.Parse(time.RFC3339Nano, a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	updatedAt, err := time.Parse(time.RFC3339Nano, a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &model.Asset{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Caption:     a.Caption,
		Transcript:  a.Transcript,
		CategoryID:  a.CategoryID,
		VideoFile:   a.VideoFile,
		ThumbFile:   a.ThumbFile,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// Compile-time verification that RedisAssetCache implements AssetCache.
var _ AssetCache = (*RedisAssetCache)(nil)
