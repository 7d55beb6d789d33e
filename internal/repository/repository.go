package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"blogicum/internal/models"
)

// ErrNotFound is returned for any lookup that matched no row.
var ErrNotFound = errors.New("not found")

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, userID string) error
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	Visible(ctx context.Context, now time.Time, limit, offset int) ([]models.Post, error)
	CountVisible(ctx context.Context, now time.Time) (int, error)
	VisibleByCategory(ctx context.Context, categoryID string, now time.Time, limit, offset int) ([]models.Post, error)
	CountVisibleByCategory(ctx context.Context, categoryID string, now time.Time) (int, error)
	ByAuthor(ctx context.Context, authorID string, onlyVisible bool, now time.Time, limit, offset int) ([]models.Post, error)
	CountByAuthor(ctx context.Context, authorID string, onlyVisible bool, now time.Time) (int, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID string) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID string) (*models.Comment, error)
	GetByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, commentID string) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Category, error)
	GetAllPublished(ctx context.Context) ([]models.Category, error)
}

type LocationRepository interface {
	Create(ctx context.Context, location *models.Location) error
	GetAllPublished(ctx context.Context) ([]models.Location, error)
}

type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetAll(ctx context.Context) ([]models.Tag, error)
	GetByPostID(ctx context.Context, postID string) ([]models.Tag, error)
	ReplaceForPost(ctx context.Context, postID string, tagIDs []string) error
}

type Repository struct {
	User     UserRepository
	Post     PostRepository
	Comment  CommentRepository
	Category CategoryRepository
	Location LocationRepository
	Tag      TagRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:     NewUserRepository(db),
		Post:     NewPostRepository(db),
		Comment:  NewCommentRepository(db),
		Category: NewCategoryRepository(db),
		Location: NewLocationRepository(db),
		Tag:      NewTagRepository(db),
	}
}
