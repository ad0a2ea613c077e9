package blob

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tkanda-dev/mediavault/internal/domain/repository"
	"github.com/tkanda-dev/mediavault/internal/infrastructure/metrics"
)

// objectReader abstracts minio.Object for testability.
// *minio.Object satisfies this interface.
type objectReader interface {
	io.ReadCloser
	Stat() (minio.ObjectInfo, error)
}

// minioClient defines the interface for MinIO operations.
// This abstraction allows for easier unit testing with mocks.
type minioClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (objectReader, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

// minioClientAdapter wraps *minio.Client to implement minioClient.
// Needed because *minio.Client.GetObject returns *minio.Object, while our
// interface returns objectReader for testability.
type minioClientAdapter struct {
	client *minio.Client
}

func (a *minioClientAdapter) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return a.client.BucketExists(ctx, bucketName)
}

func (a *minioClientAdapter) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return a.client.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}

func (a *minioClientAdapter) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (objectReader, error) {
	return a.client.GetObject(ctx, bucketName, objectName, opts)
}

func (a *minioClientAdapter) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	return a.client.RemoveObject(ctx, bucketName, objectName, opts)
}

func (a *minioClientAdapter) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	return a.client.StatObject(ctx, bucketName, objectName, opts)
}

// MinIOConfig holds configuration for the MinIO blob store.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinIOStore implements repository.BlobStore on a MinIO/S3 bucket.
// One object per blob, keyed by the generated stored name.
type MinIOStore struct {
	client minioClient
	bucket string
}

// NewMinIOStore creates a new MinIO-backed blob store.
// It verifies the bucket exists during initialization to fail fast on
// misconfiguration.
func NewMinIOStore(ctx context.Context, cfg MinIOConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return newMinIOStoreWithClient(ctx, &minioClientAdapter{client: client}, cfg.Bucket)
}

// newMinIOStoreWithClient creates a MinIOStore with a given minioClient.
// This is used for dependency injection in tests.
func newMinIOStoreWithClient(ctx context.Context, client minioClient, bucket string) (*MinIOStore, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", repository.ErrBucketNotFound, bucket)
	}

	return &MinIOStore{client: client, bucket: bucket}, nil
}

// Put uploads content under a freshly generated stored name.
func (s *MinIOStore) Put(ctx context.Context, originalName string, content io.Reader) (string, error) {
	storedName := generateStoredName(originalName)

	_, err := s.client.PutObject(ctx, s.bucket, storedName, content, -1, minio.PutObjectOptions{})
	if err != nil {
		metrics.BlobOperationsTotal.WithLabelValues(metrics.BlobOpPut, metrics.StatusError).Inc()
		return "", fmt.Errorf("failed to upload blob: %w", err)
	}

	metrics.BlobOperationsTotal.WithLabelValues(metrics.BlobOpPut, metrics.StatusSuccess).Inc()
	return storedName, nil
}

// Open retrieves the named blob.
// Caller is responsible for closing the returned ReadCloser.
func (s *MinIOStore) Open(ctx context.Context, storedName string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, storedName, minio.GetObjectOptions{})
	if err != nil {
		metrics.BlobOperationsTotal.WithLabelValues(metrics.BlobOpOpen, metrics.StatusError).Inc()
		return nil, fmt.Errorf("failed to get blob: %w", err)
	}

	// GetObject returns a lazy reader that doesn't fail until read;
	// stat it so a missing object surfaces here.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, repository.ErrBlobNotFound
		}
		metrics.BlobOperationsTotal.WithLabelValues(metrics.BlobOpOpen, metrics.StatusError).Inc()
		return nil, fmt.Errorf("failed to stat blob: %w", err)
	}

	metrics.BlobOperationsTotal.WithLabelValues(metrics.BlobOpOpen, metrics.StatusSuccess).Inc()
	return obj, nil
}

// Delete removes the named blob. MinIO's RemoveObject does not error on a
// missing key, matching the idempotent-delete contract.
func (s *MinIOStore) Delete(ctx context.Context, storedName string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, storedName, minio.RemoveObjectOptions{}); err != nil {
		metrics.BlobOperationsTotal.WithLabelValues(metrics.BlobOpDelete, metrics.StatusError).Inc()
		return fmt.Errorf("failed to delete blob: %w", err)
	}

	metrics.BlobOperationsTotal.WithLabelValues(metrics.BlobOpDelete, metrics.StatusSuccess).Inc()
	return nil
}

// Exists checks if the named blob is present.
func (s *MinIOStore) Exists(ctx context.Context, storedName string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, storedName, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		metrics.BlobOperationsTotal.WithLabelValues(metrics.BlobOpExists, metrics.StatusError).Inc()
		return false, fmt.Errorf("failed to check blob existence: %w", err)
	}
	return true, nil
}

// Compile-time verification that MinIOStore implements repository.BlobStore.
var _ repository.BlobStore = (*MinIOStore)(nil)
