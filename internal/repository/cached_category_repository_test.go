package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"trivia-api/internal/cache"
	"trivia-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newCategoryStore(t *testing.T, types ...string) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	for _, typ := range types {
		require.NoError(t, store.SaveCategory(context.Background(), &domain.Category{Type: typ}))
	}
	return store
}

func TestCachedCategoryRepository_Miss(t *testing.T) {
	ctx := context.Background()
	store := newCategoryStore(t, "Science", "Art")
	mockCache := new(MockCache)
	repo := NewCachedCategoryRepository(store, mockCache, time.Minute)

	mockCache.On("Get", ctx, cache.CategoriesKey()).Return("", domain.ErrCacheMiss).Once()
	mockCache.On("Set", ctx, cache.CategoriesKey(), `[{"id":1,"type":"Science"},{"id":2,"type":"Art"}]`, time.Minute).Return(nil).Once()

	categories, err := repo.GetAllCategories(ctx)

	require.NoError(t, err)
	assert.Len(t, categories, 2)
	mockCache.AssertExpectations(t)
}

func TestCachedCategoryRepository_Hit(t *testing.T) {
	ctx := context.Background()
	mockCache := new(MockCache)
	// The inner store is empty, so any result must come from the cache.
	repo := NewCachedCategoryRepository(NewMemoryStore(), mockCache, time.Minute)

	mockCache.On("Get", ctx, cache.CategoriesKey()).Return(`[{"id":7,"type":"Sports"}]`, nil).Once()

	categories, err := repo.GetAllCategories(ctx)

	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, &domain.Category{ID: 7, Type: "Sports"}, categories[0])
	mockCache.AssertExpectations(t)
	mockCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedCategoryRepository_CacheErrorFallsBack(t *testing.T) {
	ctx := context.Background()
	store := newCategoryStore(t, "Science")
	mockCache := new(MockCache)
	repo := NewCachedCategoryRepository(store, mockCache, time.Minute)

	mockCache.On("Get", ctx, cache.CategoriesKey()).Return("", errors.New("connection refused")).Once()
	mockCache.On("Set", ctx, cache.CategoriesKey(), mock.Anything, time.Minute).Return(errors.New("connection refused")).Once()

	categories, err := repo.GetAllCategories(ctx)

	require.NoError(t, err)
	assert.Len(t, categories, 1)
	mockCache.AssertExpectations(t)
}

func TestCachedCategoryRepository_MalformedEntry(t *testing.T) {
	ctx := context.Background()
	store := newCategoryStore(t, "Science")
	mockCache := new(MockCache)
	repo := NewCachedCategoryRepository(store, mockCache, time.Minute)

	mockCache.On("Get", ctx, cache.CategoriesKey()).Return("{not json", nil).Once()
	mockCache.On("Set", ctx, cache.CategoriesKey(), `[{"id":1,"type":"Science"}]`, time.Minute).Return(nil).Once()

	categories, err := repo.GetAllCategories(ctx)

	require.NoError(t, err)
	assert.Equal(t, "Science", categories[0].Type)
	mockCache.AssertExpectations(t)
}

func TestCachedCategoryRepository_EmptyNotCached(t *testing.T) {
	ctx := context.Background()
	mockCache := new(MockCache)
	repo := NewCachedCategoryRepository(NewMemoryStore(), mockCache, time.Minute)

	mockCache.On("Get", ctx, cache.CategoriesKey()).Return("", domain.ErrCacheMiss).Once()

	categories, err := repo.GetAllCategories(ctx)

	require.NoError(t, err)
	assert.Empty(t, categories)
	mockCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedCategoryRepository_SaveInvalidates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	mockCache := new(MockCache)
	repo := NewCachedCategoryRepository(store, mockCache, time.Minute)

	mockCache.On("Delete", ctx, cache.CategoriesKey()).Return(nil).Once()

	category := &domain.Category{Type: "History"}
	require.NoError(t, repo.SaveCategory(ctx, category))
	assert.Equal(t, int64(1), category.ID)
	mockCache.AssertExpectations(t)
}
