package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Dosada05/prediction-league/models"
	"github.com/Dosada05/prediction-league/repositories"
	"github.com/Dosada05/prediction-league/storage"
	"github.com/Dosada05/prediction-league/utils"
)

type UpdateProfileInput struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=50"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=50"`
	Nickname  *string `json:"nickname,omitempty" validate:"omitempty,min=3,max=30"`
	Password  *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
}

type UserService interface {
	GetProfile(ctx context.Context, userID int) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int, input UpdateProfileInput) (*models.User, error)
	UploadAvatar(ctx context.Context, userID int, contentType string, file io.Reader) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

func NewUserService(userRepo repositories.UserRepository, uploader storage.FileUploader) UserService {
	return &userService{
		userRepo: userRepo,
		uploader: uploader,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	s.populateAvatarURL(user)
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Nickname != nil {
		user.Nickname = strings.TrimSpace(*input.Nickname)
	}
	if input.Password != nil {
		hash, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserNicknameConflict):
			return nil, ErrUserNicknameConflict
		case errors.Is(err, repositories.ErrUserEmailConflict):
			return nil, ErrUserEmailConflict
		default:
			return nil, fmt.Errorf("failed to update user %d: %w", userID, err)
		}
	}

	s.populateAvatarURL(user)
	return user, nil
}

func (s *userService) UploadAvatar(ctx context.Context, userID int, contentType string, file io.Reader) (*models.User, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrValidationFailed
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	key := fmt.Sprintf("users/%d/avatar-%d", userID, time.Now().UnixNano())
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar for user %d: %w", userID, err)
	}

	oldKey := user.AvatarKey
	if err := s.userRepo.UpdateAvatarKey(ctx, userID, result.Key); err != nil {
		return nil, fmt.Errorf("failed to save avatar key for user %d: %w", userID, err)
	}
	if oldKey != nil && *oldKey != result.Key {
		// Old object removal is best effort.
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	user.AvatarKey = &result.Key
	s.populateAvatarURL(user)
	return user, nil
}

func (s *userService) populateAvatarURL(user *models.User) {
	if user == nil || user.AvatarKey == nil || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*user.AvatarKey); url != "" {
		user.AvatarURL = &url
	}
}
