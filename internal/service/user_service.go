package service

import (
	"context"

	"blogicum/internal/models"
	"blogicum/internal/repository"
)

type UpdateProfileRequest struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
}

type UserService interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// UpdateProfile only ever touches the record behind userID: the acting
	// user edits themselves, never anyone else.
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetUserByUsername(ctx, username)
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Username = req.Username
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = req.Email

	if err = s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
