package service

import (
	"errors"

	"blogicum/internal/config"
	"blogicum/internal/repository"
	"blogicum/internal/storage"
)

// ErrPermissionDenied marks an authenticated request by the wrong owner.
var ErrPermissionDenied = errors.New("permission denied")

// ErrNotFound re-exports the repository sentinel so handlers can treat
// "absent" and "hidden" uniformly without importing the repository package.
var ErrNotFound = repository.ErrNotFound

type Service struct {
	Auth    AuthService
	User    UserService
	Post    PostService
	Comment CommentService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:    NewAuthService(rep.User, cfg),
		User:    NewUserService(rep.User),
		Post:    NewPostService(rep.Post, rep.Category, rep.Tag, storage, cfg),
		Comment: NewCommentService(rep.Comment, rep.Post, cfg),
	}
}
