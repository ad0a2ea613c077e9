package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/tkanda-dev/mediavault/internal/config"
	"github.com/tkanda-dev/mediavault/internal/domain/repository"
	"github.com/tkanda-dev/mediavault/internal/infrastructure/blob"
	"github.com/tkanda-dev/mediavault/internal/infrastructure/metrics"
	"github.com/tkanda-dev/mediavault/internal/infrastructure/queue"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	blobStore, err := newBlobStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize blob store: %w", err)
	}
	logger.Info("blob store ready", slog.String("backend", cfg.Storage.Backend))

	queueClient, err := queue.NewClient(ctx, queue.DefaultClientConfig(cfg.RabbitMQ.URL()))
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer queueClient.Close()
	logger.Info("connected to RabbitMQ")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// WaitGroup to track in-flight tasks
	var wg sync.WaitGroup

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting sweeper, consuming cleanup tasks")
		err := queueClient.ConsumeCleanupTasks(ctx, func(task repository.CleanupTask) error {
			wg.Add(1)
			defer wg.Done()

			logger.Info("sweeping orphaned blobs",
				slog.Int64("asset_id", task.AssetID),
				slog.Int("blobs", len(task.StoredNames)),
				slog.String("reason", task.Reason),
				slog.Int("retry_count", task.RetryCount),
			)

			if err := sweep(ctx, blobStore, task); err != nil {
				metrics.CleanupTasksTotal.WithLabelValues(metrics.CleanupError).Inc()
				logger.Error("sweep failed",
					slog.Int64("asset_id", task.AssetID),
					slog.String("error", err.Error()),
				)
				return err
			}

			metrics.CleanupTasksTotal.WithLabelValues(metrics.CleanupSwept).Inc()
			logger.Info("sweep completed", slog.Int64("asset_id", task.AssetID))
			return nil
		})
		if err != nil && ctx.Err() == nil {
			errCh <- fmt.Errorf("consumer error: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down sweeper", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Sweeper.ShutdownTimeout)
	defer shutdownCancel()

	// Stop consuming new tasks, then drain what is in flight.
	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("all in-flight tasks completed")
	case <-shutdownCtx.Done():
		logger.Warn("shutdown timeout exceeded, some tasks may not have completed")
	}

	logger.Info("sweeper stopped")
	return nil
}

// sweep deletes every blob named by the task. Blob deletion is idempotent,
// so a task that raced a synchronous compensation simply no-ops.
func sweep(ctx context.Context, blobs repository.BlobStore, task repository.CleanupTask) error {
	for _, name := range task.StoredNames {
		if err := blobs.Delete(ctx, name); err != nil {
			return fmt.Errorf("delete blob %s: %w", name, err)
		}
	}
	return nil
}

func newBlobStore(ctx context.Context, cfg *config.Config) (repository.BlobStore, error) {
	switch cfg.Storage.Backend {
	case "fs":
		return blob.NewFSStore(cfg.Storage.Dir)
	case "minio":
		return blob.NewMinIOStore(ctx, blob.MinIOConfig{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Bucket:    cfg.MinIO.Bucket,
			UseSSL:    cfg.MinIO.UseSSL,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
