package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"trivia-api/internal/cache"
	"trivia-api/internal/domain"
	"trivia-api/internal/logger"

	"go.uber.org/zap"
)

type cachedCategory struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// CachedCategoryRepository is a read-through cache in front of a CategoryRepository.
// Cache failures are logged and the inner repository is used instead.
type CachedCategoryRepository struct {
	inner domain.CategoryRepository
	cache domain.Cache
	ttl   time.Duration
	key   string
}

func NewCachedCategoryRepository(inner domain.CategoryRepository, c domain.Cache, ttl time.Duration) *CachedCategoryRepository {
	return &CachedCategoryRepository{
		inner: inner,
		cache: c,
		ttl:   ttl,
		key:   cache.CategoriesKey(),
	}
}

var (
	_ domain.CategoryRepository = (*CachedCategoryRepository)(nil)
	_ domain.CategoryWriter     = (*CachedCategoryRepository)(nil)
)

func (r *CachedCategoryRepository) GetAllCategories(ctx context.Context) ([]*domain.Category, error) {
	if categories, ok := r.load(ctx); ok {
		return categories, nil
	}

	categories, err := r.inner.GetAllCategories(ctx)
	if err != nil {
		return nil, err
	}

	// An empty listing is not cached so that seeding shows up immediately.
	if len(categories) > 0 {
		r.store(ctx, categories)
	}
	return categories, nil
}

// SaveCategory writes through to the inner repository and drops the cached listing.
func (r *CachedCategoryRepository) SaveCategory(ctx context.Context, category *domain.Category) error {
	writer, ok := r.inner.(domain.CategoryWriter)
	if !ok {
		return fmt.Errorf("category repository %T is read-only", r.inner)
	}
	if err := writer.SaveCategory(ctx, category); err != nil {
		return err
	}
	if err := r.cache.Delete(ctx, r.key); err != nil {
		logger.Get().Warn("category cache invalidation failed", zap.String("key", r.key), zap.Error(err))
	}
	return nil
}

func (r *CachedCategoryRepository) load(ctx context.Context) ([]*domain.Category, bool) {
	raw, err := r.cache.Get(ctx, r.key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("category cache read failed", zap.String("key", r.key), zap.Error(err))
		}
		return nil, false
	}

	var cached []cachedCategory
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		logger.Get().Warn("discarding malformed cached categories", zap.String("key", r.key), zap.Error(err))
		return nil, false
	}
	categories := make([]*domain.Category, len(cached))
	for i, c := range cached {
		categories[i] = &domain.Category{ID: c.ID, Type: c.Type}
	}
	return categories, true
}

func (r *CachedCategoryRepository) store(ctx context.Context, categories []*domain.Category) {
	cached := make([]cachedCategory, len(categories))
	for i, c := range categories {
		cached[i] = cachedCategory{ID: c.ID, Type: c.Type}
	}
	payload, err := json.Marshal(cached)
	if err != nil {
		logger.Get().Warn("failed to encode categories for cache", zap.Error(err))
		return
	}
	if err := r.cache.Set(ctx, r.key, string(payload), r.ttl); err != nil {
		logger.Get().Warn("category cache write failed", zap.String("key", r.key), zap.Error(err))
	}
}
