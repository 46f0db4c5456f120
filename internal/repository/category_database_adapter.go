package repository

import (
	"context"
	"fmt"

	"trivia-api/internal/domain"
	"trivia-api/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

const (
	listCategoriesQuery = `SELECT id, type FROM categories ORDER BY id ASC`
	insertCategoryQuery = `INSERT INTO categories (type) VALUES ($1) RETURNING id`
)

type CategoryDatabaseAdapter struct {
	db DBTX
}

// NewCategoryDatabaseAdapter creates a new instance of CategoryDatabaseAdapter
func NewCategoryDatabaseAdapter(db *sqlx.DB) *CategoryDatabaseAdapter {
	return &CategoryDatabaseAdapter{db: db}
}

var (
	_ domain.CategoryRepository = (*CategoryDatabaseAdapter)(nil)
	_ domain.CategoryWriter     = (*CategoryDatabaseAdapter)(nil)
)

// GetAllCategories returns all categories
func (r *CategoryDatabaseAdapter) GetAllCategories(ctx context.Context) ([]*domain.Category, error) {
	var categories []models.Category
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &categories, listCategoriesQuery); err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	domainCategories := make([]*domain.Category, len(categories))
	for i := range categories {
		domainCategories[i] = convertToDomainCategory(&categories[i])
	}
	return domainCategories, nil
}

// SaveCategory persists a new category and sets its id
func (r *CategoryDatabaseAdapter) SaveCategory(ctx context.Context, category *domain.Category) error {
	if category == nil {
		return fmt.Errorf("cannot save nil category")
	}
	var id int64
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &id, insertCategoryQuery, category.Type); err != nil {
		return fmt.Errorf("failed to insert category %q: %w", category.Type, err)
	}
	category.ID = id
	return nil
}

func convertToDomainCategory(category *models.Category) *domain.Category {
	if category == nil {
		return nil
	}
	return &domain.Category{
		ID:   category.ID,
		Type: category.Type,
	}
}
