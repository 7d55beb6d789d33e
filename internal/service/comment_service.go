package service

import (
	"context"
	"time"

	"blogicum/internal/config"
	"blogicum/internal/models"
	"blogicum/internal/repository"
)

type CommentService interface {
	ListForPost(ctx context.Context, postID string) ([]models.Comment, error)
	AddComment(ctx context.Context, postID, authorID, text string) (*models.Comment, error)
	GetOwnedComment(ctx context.Context, postID, commentID, userID string) (*models.Comment, error)
	EditComment(ctx context.Context, postID, commentID, userID, text string) error
	DeleteComment(ctx context.Context, postID, commentID, userID string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	cfg         *config.Config
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, cfg *config.Config) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		cfg:         cfg,
	}
}

func (c *commentService) ListForPost(ctx context.Context, postID string) ([]models.Comment, error) {
	return c.commentRepo.GetByPostID(ctx, postID)
}

// AddComment requires the post to be generally visible. With the
// CommentAuthorBypass policy the post's own author may comment early;
// otherwise even they wait for the post to surface. A gated post reads as
// absent, same as the detail page.
func (c *commentService) AddComment(ctx context.Context, postID, authorID, text string) (*models.Comment, error) {
	post, err := c.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	authorBypass := c.cfg.CommentAuthorBypass && authorID == post.AuthorID
	if !IsGenerallyVisible(post, time.Now()) && !authorBypass {
		return nil, repository.ErrNotFound
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
	}

	if err = c.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// GetOwnedComment resolves a comment by the URL pair (post id, comment id).
// A missing comment or one hanging off a different post is ErrNotFound; an
// existing comment owned by someone else is ErrPermissionDenied.
func (c *commentService) GetOwnedComment(ctx context.Context, postID, commentID, userID string) (*models.Comment, error) {
	comment, err := c.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.PostID != postID {
		return nil, repository.ErrNotFound
	}

	if comment.AuthorID != userID {
		return nil, ErrPermissionDenied
	}

	return comment, nil
}

func (c *commentService) EditComment(ctx context.Context, postID, commentID, userID, text string) error {
	comment, err := c.GetOwnedComment(ctx, postID, commentID, userID)
	if err != nil {
		return err
	}

	comment.Text = text

	return c.commentRepo.Update(ctx, comment)
}

func (c *commentService) DeleteComment(ctx context.Context, postID, commentID, userID string) error {
	if _, err := c.GetOwnedComment(ctx, postID, commentID, userID); err != nil {
		return err
	}

	return c.commentRepo.Delete(ctx, commentID)
}
