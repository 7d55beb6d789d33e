package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"blogicum/internal/models"
)

type TagRepositoryImpl struct {
	db *sqlx.DB
}

func NewTagRepository(db *sqlx.DB) *TagRepositoryImpl {
	return &TagRepositoryImpl{db: db}
}

func (r *TagRepositoryImpl) Create(ctx context.Context, tag *models.Tag) error {
	query := `INSERT INTO tags (tag_id, name, slug) VALUES (:tag_id, :name, :slug)`

	if tag.TagID == "" {
		tag.TagID = uuid.New().String()
	}

	if _, err := r.db.NamedExecContext(ctx, query, tag); err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	return nil
}

func (r *TagRepositoryImpl) GetAll(ctx context.Context) ([]models.Tag, error) {
	query := `SELECT * FROM tags ORDER BY name`

	tags := []models.Tag{}
	if err := r.db.SelectContext(ctx, &tags, query); err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	return tags, nil
}

func (r *TagRepositoryImpl) GetByPostID(ctx context.Context, postID string) ([]models.Tag, error) {
	query := `
		SELECT t.tag_id, t.name, t.slug
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.tag_id
		WHERE pt.post_id = $1
		ORDER BY t.name
	`

	tags := []models.Tag{}
	if err := r.db.SelectContext(ctx, &tags, query, postID); err != nil {
		return nil, fmt.Errorf("failed to list post tags: %w", err)
	}

	return tags, nil
}

// ReplaceForPost rewrites the post's tag set to exactly tagIDs.
func (r *TagRepositoryImpl) ReplaceForPost(ctx context.Context, postID string, tagIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("failed to clear post tags: %w", err)
	}

	for _, tagID := range tagIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`, postID, tagID)
		if err != nil {
			return fmt.Errorf("failed to attach tag %s: %w", tagID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit post tags: %w", err)
	}

	return nil
}
