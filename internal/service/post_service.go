package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"blogicum/internal/config"
	"blogicum/internal/models"
	"blogicum/internal/repository"
	"blogicum/internal/storage"
)

// PageSize is the fixed number of posts per feed page.
const PageSize = 10

type ImageUpload struct {
	FileName string
	Size     int64
	Reader   io.Reader
}

type CreatePostRequest struct {
	AuthorID   string
	Title      string
	Text       string
	PubDate    time.Time
	CategoryID string
	LocationID string
	TagIDs     []string
	Image      *ImageUpload
}

type UpdatePostRequest struct {
	PostID     string
	AuthorID   string
	Title      string
	Text       string
	PubDate    time.Time
	CategoryID string
	LocationID string
	TagIDs     []string
	Image      *ImageUpload
}

type PostService interface {
	HomeFeed(ctx context.Context, page int) (*models.Feed, error)
	CategoryFeed(ctx context.Context, slug string, page int) (*models.Category, *models.Feed, error)
	ProfileFeed(ctx context.Context, profileUserID, viewerID string, page int) (*models.Feed, error)
	GetPost(ctx context.Context, postID, viewerID string) (*models.Post, error)
	GetPostForAuthor(ctx context.Context, postID, userID string) (*models.Post, error)
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, req UpdatePostRequest) error
	DeletePost(ctx context.Context, postID, userID string) error
}

type postService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	tagRepo      repository.TagRepository
	storage      storage.Storage
	cfg          *config.Config
}

func NewPostService(
	postRepo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
	tagRepo repository.TagRepository,
	storage storage.Storage,
	cfg *config.Config,
) PostService {
	return &postService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		storage:      storage,
		cfg:          cfg,
	}
}

// clampPage normalizes a requested page against a total row count:
// below-range requests get page 1, past-the-end requests get the last valid
// page instead of an error.
func clampPage(page, total, size int) (int, int) {
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return page, totalPages
}

// HomeFeed always uses the stranger branch of the visibility rule, even for
// authenticated viewers.
func (p *postService) HomeFeed(ctx context.Context, page int) (*models.Feed, error) {
	now := time.Now()

	total, err := p.postRepo.CountVisible(ctx, now)
	if err != nil {
		return nil, err
	}

	page, totalPages := clampPage(page, total, PageSize)

	posts, err := p.postRepo.Visible(ctx, now, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, err
	}

	return &models.Feed{
		Posts:      posts,
		Page:       page,
		PageSize:   PageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// CategoryFeed 404s (ErrNotFound) when the category is absent or itself
// unpublished. The author exception never applies here.
func (p *postService) CategoryFeed(ctx context.Context, slug string, page int) (*models.Category, *models.Feed, error) {
	category, err := p.categoryRepo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()

	total, err := p.postRepo.CountVisibleByCategory(ctx, category.CategoryID, now)
	if err != nil {
		return nil, nil, err
	}

	page, totalPages := clampPage(page, total, PageSize)

	posts, err := p.postRepo.VisibleByCategory(ctx, category.CategoryID, now, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, nil, err
	}

	return category, &models.Feed{
		Posts:      posts,
		Page:       page,
		PageSize:   PageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// ProfileFeed shows the profile owner everything they wrote; other viewers
// get the general-visibility branch.
func (p *postService) ProfileFeed(ctx context.Context, profileUserID, viewerID string, page int) (*models.Feed, error) {
	now := time.Now()
	onlyVisible := viewerID != profileUserID

	total, err := p.postRepo.CountByAuthor(ctx, profileUserID, onlyVisible, now)
	if err != nil {
		return nil, err
	}

	page, totalPages := clampPage(page, total, PageSize)

	posts, err := p.postRepo.ByAuthor(ctx, profileUserID, onlyVisible, now, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, err
	}

	return &models.Feed{
		Posts:      posts,
		Page:       page,
		PageSize:   PageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// GetPost fetches one post for the detail page. A post the viewer may not
// see is reported as ErrNotFound, indistinguishable from a missing one.
func (p *postService) GetPost(ctx context.Context, postID, viewerID string) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !IsVisibleTo(post, viewerID, time.Now()) {
		return nil, repository.ErrNotFound
	}

	tags, err := p.tagRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Tags = tags

	return post, nil
}

// GetPostForAuthor fetches a post without visibility filtering and reports
// ErrPermissionDenied when userID is not its author. Used by the edit and
// delete endpoints, which decide soft vs hard denial themselves.
func (p *postService) GetPostForAuthor(ctx context.Context, postID, userID string) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != userID {
		return post, ErrPermissionDenied
	}

	tags, err := p.tagRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Tags = tags

	return post, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func (p *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		AuthorID:    req.AuthorID,
		Title:       req.Title,
		Text:        req.Text,
		PubDate:     req.PubDate,
		CategoryID:  nullString(req.CategoryID),
		LocationID:  nullString(req.LocationID),
		IsPublished: true,
	}

	if req.Image != nil {
		_, imageURL, err := p.storage.UploadImage(ctx, req.Image.FileName, req.Image.Reader, req.Image.Size)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image: %w", err)
		}
		post.ImageURL = nullString(imageURL)
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	if len(req.TagIDs) > 0 {
		if err := p.tagRepo.ReplaceForPost(ctx, post.PostID, req.TagIDs); err != nil {
			return nil, err
		}
	}

	return post, nil
}

func (p *postService) UpdatePost(ctx context.Context, req UpdatePostRequest) error {
	post, err := p.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return err
	}

	if post.AuthorID != req.AuthorID {
		return ErrPermissionDenied
	}

	post.Title = req.Title
	post.Text = req.Text
	post.PubDate = req.PubDate
	post.CategoryID = nullString(req.CategoryID)
	post.LocationID = nullString(req.LocationID)

	if req.Image != nil {
		_, imageURL, err := p.storage.UploadImage(ctx, req.Image.FileName, req.Image.Reader, req.Image.Size)
		if err != nil {
			return fmt.Errorf("failed to upload image: %w", err)
		}
		post.ImageURL = nullString(imageURL)
	}

	if err = p.postRepo.Update(ctx, post); err != nil {
		return err
	}

	return p.tagRepo.ReplaceForPost(ctx, req.PostID, req.TagIDs)
}

func (p *postService) DeletePost(ctx context.Context, postID, userID string) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != userID {
		return ErrPermissionDenied
	}

	if err = p.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	if post.ImageURL.Valid {
		if err = p.storage.DeleteImageByURL(ctx, post.ImageURL.String); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
			// The post row is already gone; a stray object is not worth
			// failing the request over.
			return nil
		}
	}

	return nil
}
