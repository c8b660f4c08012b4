package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/tsirdo8/mini-social/internal/media"
	"github.com/tsirdo8/mini-social/internal/model"
	"github.com/tsirdo8/mini-social/internal/repository"
)

var ErrBlankFullName = errors.New("full name cannot be empty")

// AvatarUpload is an uploaded avatar file to be stored alongside a profile
// update.
type AvatarUpload struct {
	Name string
	Data io.Reader
}

// UserService handles profile listing and updates.
type UserService struct {
	users UserStore
	media media.Store
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore, store media.Store) *UserService {
	return &UserService{users: users, media: store}
}

// List returns every user, newest first, without password hashes.
func (s *UserService) List(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.UserResponse, len(users))
	for i := range users {
		result[i] = users[i].ToResponse()
	}
	return result, nil
}

// Update applies the submitted profile fields. A new avatar is stored first
// and the previous one removed; removal failure only logs, the old file is
// orphaned rather than failing the update.
func (s *UserService) Update(ctx context.Context, userID int64, req model.UpdateUserRequest, avatar *AvatarUpload) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.UserResponse{}, err
	}

	if req.FullName != nil {
		if strings.TrimSpace(*req.FullName) == "" {
			return model.UserResponse{}, ErrBlankFullName
		}
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		if !validEmail(*req.Email) {
			return model.UserResponse{}, ErrInvalidEmail
		}
		user.Email = normalizeEmail(*req.Email)
	}

	if avatar != nil {
		ref, err := s.media.Save(ctx, avatar.Name, avatar.Data)
		if err != nil {
			return model.UserResponse{}, err
		}
		if user.Avatar != "" {
			if err := s.media.Remove(ctx, user.Avatar); err != nil {
				slog.Warn("removing previous avatar failed", "ref", user.Avatar, "error", err)
			}
		}
		user.Avatar = ref
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.UserResponse{}, ErrEmailTaken
		}
		return model.UserResponse{}, err
	}

	return updated.ToResponse(), nil
}
