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

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

const selectPosts = `
	SELECT
		p.post_id, p.author_id, p.category_id, p.location_id,
		p.title, p.text, p.image_url, p.pub_date, p.is_published, p.created_at,
		u.username AS author_username,
		c.title AS category_title,
		c.slug AS category_slug,
		c.is_published AS category_published,
		l.name AS location_name,
		(SELECT COUNT(*) FROM comments cm WHERE cm.post_id = p.post_id) AS comment_count
	FROM posts p
	JOIN users u ON u.user_id = p.author_id
	LEFT JOIN categories c ON c.category_id = p.category_id
	LEFT JOIN locations l ON l.location_id = p.location_id`

// visibleWhere is the general-visibility branch. Every feed and count query
// shares this exact text so the predicate cannot drift between call sites.
const visibleWhere = `p.is_published = TRUE
		AND p.pub_date <= :now
		AND (p.category_id IS NULL OR c.is_published = TRUE)`

const countPosts = `
	SELECT COUNT(*)
	FROM posts p
	LEFT JOIN categories c ON c.category_id = p.category_id`

const orderByPubDate = ` ORDER BY p.pub_date DESC LIMIT :limit OFFSET :offset`

func (r *PostRepositoryImpl) selectNamed(ctx context.Context, dest interface{}, query string, arg map[string]interface{}) error {
	q, args, err := sqlx.Named(query, arg)
	if err != nil {
		return fmt.Errorf("failed to bind query parameters: %w", err)
	}
	q = r.db.Rebind(q)
	return r.db.SelectContext(ctx, dest, q, args...)
}

func (r *PostRepositoryImpl) getNamed(ctx context.Context, dest interface{}, query string, arg map[string]interface{}) error {
	q, args, err := sqlx.Named(query, arg)
	if err != nil {
		return fmt.Errorf("failed to bind query parameters: %w", err)
	}
	q = r.db.Rebind(q)
	return r.db.GetContext(ctx, dest, q, args...)
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts
		(post_id, author_id, category_id, location_id, title, text, image_url, pub_date, is_published, created_at)
		VALUES
		(:post_id, :author_id, :category_id, :location_id, :title, :text, :image_url, :pub_date, :is_published, :created_at)
	`

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}

	if _, err := r.db.NamedExecContext(ctx, query, post); err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// GetByID fetches a post with its read-side annotations and no visibility
// filtering. Callers decide what the viewer may see.
func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := selectPosts + ` WHERE p.post_id = :post_id`

	var post models.Post
	err := r.getNamed(ctx, &post, query, map[string]interface{}{"post_id": postID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) Visible(ctx context.Context, now time.Time, limit, offset int) ([]models.Post, error) {
	query := selectPosts + ` WHERE ` + visibleWhere + orderByPubDate

	posts := []models.Post{}
	err := r.selectNamed(ctx, &posts, query, map[string]interface{}{
		"now":    now,
		"limit":  limit,
		"offset": offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list visible posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) CountVisible(ctx context.Context, now time.Time) (int, error) {
	query := countPosts + ` WHERE ` + visibleWhere

	var count int
	err := r.getNamed(ctx, &count, query, map[string]interface{}{"now": now})
	if err != nil {
		return 0, fmt.Errorf("failed to count visible posts: %w", err)
	}

	return count, nil
}

func (r *PostRepositoryImpl) VisibleByCategory(ctx context.Context, categoryID string, now time.Time, limit, offset int) ([]models.Post, error) {
	query := selectPosts + ` WHERE ` + visibleWhere + ` AND p.category_id = :category_id` + orderByPubDate

	posts := []models.Post{}
	err := r.selectNamed(ctx, &posts, query, map[string]interface{}{
		"now":         now,
		"category_id": categoryID,
		"limit":       limit,
		"offset":      offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list category posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) CountVisibleByCategory(ctx context.Context, categoryID string, now time.Time) (int, error) {
	query := countPosts + ` WHERE ` + visibleWhere + ` AND p.category_id = :category_id`

	var count int
	err := r.getNamed(ctx, &count, query, map[string]interface{}{
		"now":         now,
		"category_id": categoryID,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count category posts: %w", err)
	}

	return count, nil
}

// ByAuthor lists one author's posts. With onlyVisible the general-visibility
// branch applies on top; without it the author sees everything of their own.
func (r *PostRepositoryImpl) ByAuthor(ctx context.Context, authorID string, onlyVisible bool, now time.Time, limit, offset int) ([]models.Post, error) {
	query := selectPosts + ` WHERE p.author_id = :author_id`
	if onlyVisible {
		query += ` AND ` + visibleWhere
	}
	query += orderByPubDate

	posts := []models.Post{}
	err := r.selectNamed(ctx, &posts, query, map[string]interface{}{
		"author_id": authorID,
		"now":       now,
		"limit":     limit,
		"offset":    offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list author posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) CountByAuthor(ctx context.Context, authorID string, onlyVisible bool, now time.Time) (int, error) {
	query := countPosts + ` WHERE p.author_id = :author_id`
	if onlyVisible {
		query += ` AND ` + visibleWhere
	}

	var count int
	err := r.getNamed(ctx, &count, query, map[string]interface{}{
		"author_id": authorID,
		"now":       now,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count author posts: %w", err)
	}

	return count, nil
}

// Update never touches author_id or is_published: neither is client-editable.
func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			title = :title,
			text = :text,
			pub_date = :pub_date,
			category_id = :category_id,
			location_id = :location_id,
			image_url = :image_url
		WHERE post_id = :post_id
	`

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes the post; comments and tag links go with it via
// ON DELETE CASCADE.
func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
