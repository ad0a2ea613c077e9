package usecase

import (
	"context"
	"io"
	"time"

	"github.com/tkanda-dev/mediavault/internal/domain/model"
	"github.com/tkanda-dev/mediavault/internal/domain/repository"
)

// mockAssetRepository provides a configurable mock for AssetRepository.
type mockAssetRepository struct {
	createFn  func(ctx context.Context, asset *model.Asset) error
	getByIDFn func(ctx context.Context, id int64) (*model.Asset, error)
	listFn    func(ctx context.Context) ([]*model.Asset, error)
	updateFn  func(ctx context.Context, asset *model.Asset) error
	deleteFn  func(ctx context.Context, id int64) error
}

func (m *mockAssetRepository) Create(ctx context.Context, asset *model.Asset) error {
	if m.createFn != nil {
		return m.createFn(ctx, asset)
	}
	asset.ID = 1
	return nil
}

func (m *mockAssetRepository) GetByID(ctx context.Context, id int64) (*model.Asset, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrAssetNotFound
}

func (m *mockAssetRepository) List(ctx context.Context) ([]*model.Asset, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockAssetRepository) Update(ctx context.Context, asset *model.Asset) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, asset)
	}
	return nil
}

func (m *mockAssetRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockBlobStore provides a configurable mock for BlobStore. It records every
// Put and Delete so tests can assert on blob-level side effects.
type mockBlobStore struct {
	putFn    func(ctx context.Context, originalName string, content io.Reader) (string, error)
	openFn   func(ctx context.Context, storedName string) (io.ReadCloser, error)
	deleteFn func(ctx context.Context, storedName string) error
	existsFn func(ctx context.Context, storedName string) (bool, error)

	puts    []string // stored names returned by Put, in order
	deletes []string // stored names passed to Delete, in order
}

func (m *mockBlobStore) Put(ctx context.Context, originalName string, content io.Reader) (string, error) {
	if m.putFn != nil {
		name, err := m.putFn(ctx, originalName, content)
		if err == nil {
			m.puts = append(m.puts, name)
		}
		return name, err
	}
	name := "stored-" + originalName
	m.puts = append(m.puts, name)
	return name, nil
}

func (m *mockBlobStore) Open(ctx context.Context, storedName string) (io.ReadCloser, error) {
	if m.openFn != nil {
		return m.openFn(ctx, storedName)
	}
	return nil, repository.ErrBlobNotFound
}

func (m *mockBlobStore) Delete(ctx context.Context, storedName string) error {
	m.deletes = append(m.deletes, storedName)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, storedName)
	}
	return nil
}

func (m *mockBlobStore) Exists(ctx context.Context, storedName string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, storedName)
	}
	return false, nil
}

// mockCleanupQueue provides a configurable mock for CleanupQueue.
type mockCleanupQueue struct {
	publishFn func(ctx context.Context, task repository.CleanupTask) error

	published []repository.CleanupTask
}

func (m *mockCleanupQueue) PublishCleanupTask(ctx context.Context, task repository.CleanupTask) error {
	if m.publishFn != nil {
		if err := m.publishFn(ctx, task); err != nil {
			return err
		}
	}
	m.published = append(m.published, task)
	return nil
}

func (m *mockCleanupQueue) ConsumeCleanupTasks(ctx context.Context, handler func(task repository.CleanupTask) error) error {
	return nil
}

func (m *mockCleanupQueue) Close() error {
	return nil
}

// mockAccountRepository provides a configurable mock for AccountRepository.
type mockAccountRepository struct {
	createFn     func(ctx context.Context, account *model.Account) error
	getByEmailFn func(ctx context.Context, email string) (*model.Account, error)
	listFn       func(ctx context.Context) ([]*model.Account, error)
}

func (m *mockAccountRepository) Create(ctx context.Context, account *model.Account) error {
	if m.createFn != nil {
		return m.createFn(ctx, account)
	}
	account.ID = 1
	return nil
}

func (m *mockAccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, repository.ErrAccountNotFound
}

func (m *mockAccountRepository) List(ctx context.Context) ([]*model.Account, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

// mockAssetCache provides a configurable mock for cache.AssetCache.
type mockAssetCache struct {
	getFn    func(ctx context.Context, assetID int64) (*model.Asset, error)
	setFn    func(ctx context.Context, asset *model.Asset, ttl time.Duration) error
	deleteFn func(ctx context.Context, assetID int64) error

	sets    []int64
	deletes []int64
}

func (m *mockAssetCache) Get(ctx context.Context, assetID int64) (*model.Asset, error) {
	if m.getFn != nil {
		return m.getFn(ctx, assetID)
	}
	return nil, nil
}

func (m *mockAssetCache) Set(ctx context.Context, asset *model.Asset, ttl time.Duration) error {
	m.sets = append(m.sets, asset.ID)
	if m.setFn != nil {
		return m.setFn(ctx, asset, ttl)
	}
	return nil
}

func (m *mockAssetCache) Delete(ctx context.Context, assetID int64) error {
	m.deletes = append(m.deletes, assetID)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, assetID)
	}
	return nil
}

// mockAssetService provides a configurable mock for AssetService, used to
// test the caching decorator in isolation.
type mockAssetService struct {
	createAssetFn func(ctx context.Context, input CreateAssetInput) (*model.Asset, error)
	getAssetFn    func(ctx context.Context, assetID int64) (*model.Asset, error)
	listAssetsFn  func(ctx context.Context) ([]*model.Asset, error)
	updateAssetFn func(ctx context.Context, assetID int64, input UpdateAssetInput) (*model.Asset, error)
	deleteAssetFn func(ctx context.Context, assetID int64) error

	getCalls int
}

func (m *mockAssetService) CreateAsset(ctx context.Context, input CreateAssetInput) (*model.Asset, error) {
	if m.createAssetFn != nil {
		return m.createAssetFn(ctx, input)
	}
	return nil, nil
}

func (m *mockAssetService) GetAsset(ctx context.Context, assetID int64) (*model.Asset, error) {
	m.getCalls++
	if m.getAssetFn != nil {
		return m.getAssetFn(ctx, assetID)
	}
	return nil, repository.ErrAssetNotFound
}

func (m *mockAssetService) ListAssets(ctx context.Context) ([]*model.Asset, error) {
	if m.listAssetsFn != nil {
		return m.listAssetsFn(ctx)
	}
	return nil, nil
}

func (m *mockAssetService) UpdateAsset(ctx context.Context, assetID int64, input UpdateAssetInput) (*model.Asset, error) {
	if m.updateAssetFn != nil {
		return m.updateAssetFn(ctx, assetID, input)
	}
	return nil, nil
}

func (m *mockAssetService) DeleteAsset(ctx context.Context, assetID int64) error {
	if m.deleteAssetFn != nil {
		return m.deleteAssetFn(ctx, assetID)
	}
	return nil
}
