package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"blogicum/internal/models"
)

type CategoryRepositoryImpl struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) *CategoryRepositoryImpl {
	return &CategoryRepositoryImpl{db: db}
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (category_id, title, description, slug, is_published, created_at)
		VALUES (:category_id, :title, :description, :slug, :is_published, :created_at)
	`

	if category.CategoryID == "" {
		category.CategoryID = uuid.New().String()
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}

	if _, err := r.db.NamedExecContext(ctx, query, category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// GetPublishedBySlug only ever returns published categories: an unpublished
// category's page does not exist as far as visitors are concerned.
func (r *CategoryRepositoryImpl) GetPublishedBySlug(ctx context.Context, slug string) (*models.Category, error) {
	query := `SELECT * FROM categories WHERE slug = $1 AND is_published = TRUE`

	var category models.Category
	err := r.db.GetContext(ctx, &category, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &category, nil
}

func (r *CategoryRepositoryImpl) GetAllPublished(ctx context.Context) ([]models.Category, error) {
	query := `SELECT * FROM categories WHERE is_published = TRUE ORDER BY created_at`

	categories := []models.Category{}
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}
