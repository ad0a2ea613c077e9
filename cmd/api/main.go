package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/tkanda-dev/mediavault/internal/api/handler"
	"github.com/tkanda-dev/mediavault/internal/api/middleware"
	"github.com/tkanda-dev/mediavault/internal/config"
	"github.com/tkanda-dev/mediavault/internal/domain/repository"
	"github.com/tkanda-dev/mediavault/internal/infrastructure/blob"
	"github.com/tkanda-dev/mediavault/internal/infrastructure/cache"
	"github.com/tkanda-dev/mediavault/internal/infrastructure/postgres"
	"github.com/tkanda-dev/mediavault/internal/infrastructure/queue"
	"github.com/tkanda-dev/mediavault/internal/usecase"
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

	// Infrastructure clients
	pgClient, err := postgres.NewClient(ctx, postgres.DefaultClientConfig(cfg.Database.DSN()))
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pgClient.Close()
	logger.Info("connected to PostgreSQL")

	if err := pgClient.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	blobStore, err := newBlobStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize blob store: %w", err)
	}
	logger.Info("blob store ready", slog.String("backend", cfg.Storage.Backend))

	var cleanupQueue repository.CleanupQueue
	if cfg.RabbitMQ.Enabled {
		queueClient, err := queue.NewClient(ctx, queue.DefaultClientConfig(cfg.RabbitMQ.URL()))
		if err != nil {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		defer queueClient.Close()
		cleanupQueue = queueClient
		logger.Info("connected to RabbitMQ")
	}

	// Repositories and services
	assetRepo := postgres.NewAssetRepository(pgClient.Pool())
	accountRepo := postgres.NewAccountRepository(pgClient.Pool())
	categoryRepo := postgres.NewCategoryRepository(pgClient.Pool())
	favoriteRepo := postgres.NewFavoriteRepository(pgClient.Pool())
	ratingRepo := postgres.NewRatingRepository(pgClient.Pool())

	assetSvc := usecase.NewAssetService(assetRepo, blobStore, cleanupQueue)

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		logger.Info("connected to Redis")

		assetCache := cache.NewRedisAssetCache(redisClient)
		assetSvc = usecase.NewCachedAssetService(assetSvc, assetCache, usecase.DefaultCachedAssetServiceConfig())
	}

	accountSvc := usecase.NewAccountService(accountRepo)
	catalogSvc := usecase.NewCatalogService(categoryRepo, favoriteRepo, ratingRepo)

	r := setupRouter(logger, routerDeps{
		assets:         handler.NewAssetHandler(assetSvc, cfg.Server.MaxUploadBytes),
		auth:           handler.NewAuthHandler(accountSvc),
		catalog:        handler.NewCatalogHandler(catalogSvc),
		media:          handler.NewMediaHandler(blobStore),
		readinessCheck: pgClient.Ping,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
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

type routerDeps struct {
	assets         *handler.AssetHandler
	auth           *handler.AuthHandler
	catalog        *handler.CatalogHandler
	media          *handler.MediaHandler
	readinessCheck func(ctx context.Context) error
}

func setupRouter(logger *slog.Logger, deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready(deps.readinessCheck))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/assets", deps.assets.Create)
		r.Get("/assets", deps.assets.List)
		r.Get("/assets/{id}", deps.assets.Get)
		r.Put("/assets/{id}", deps.assets.Update)
		r.Delete("/assets/{id}", deps.assets.Delete)

		r.Post("/accounts", deps.auth.Register)
		r.Get("/accounts", deps.auth.List)
		r.Post("/auth/login", deps.auth.Login)

		r.Post("/categories", deps.catalog.CreateCategory)
		r.Get("/categories", deps.catalog.ListCategories)
		r.Post("/favorites", deps.catalog.AddFavorite)
		r.Get("/favorites", deps.catalog.ListFavorites)
		r.Post("/ratings", deps.catalog.RateAsset)
		r.Get("/ratings", deps.catalog.ListRatings)
	})

	r.Get("/media/{name}", deps.media.Serve)

	return r
}
