package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"pantry-hub/internal/model"
	"pantry-hub/internal/repository"
	"pantry-hub/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// photoExtensions maps accepted photo content types onto object key extensions.
var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// accountService implements AccountService.
type accountService struct {
	userRepo repository.UserRepository
	uploader storage.Uploader
	now      func() time.Time
	logger   zerolog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(userRepo repository.UserRepository, uploader storage.Uploader, logger zerolog.Logger) AccountService {
	return &accountService{
		userRepo: userRepo,
		uploader: uploader,
		now:      time.Now,
		logger:   logger.With().Str("service", "account").Logger(),
	}
}

// GetProfile retrieves the user's profile.
func (s *accountService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to get user")
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile applies field-level profile changes.
func (s *accountService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.User, error) {
	if req == nil {
		return nil, model.NewValidationError("profile update is required")
	}

	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" {
			return nil, model.NewValidationError("display name cannot be empty")
		}
		if err := s.userRepo.UpdateDisplayName(ctx, userID, name); err != nil {
			if err == model.ErrUserNotFound {
				return nil, err
			}
			s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to update display name")
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return s.GetProfile(ctx, userID)
}

// UploadPhoto stores a profile photo and records its URL on the profile.
func (s *accountService) UploadPhoto(ctx context.Context, userID uuid.UUID, contentType string, body io.Reader) (*model.User, error) {
	ext, ok := photoExtensions[contentType]
	if !ok {
		s.logger.Debug().Str("content_type", contentType).Msg("rejected photo upload")
		return nil, model.ErrUnsupportedMedia
	}

	key := fmt.Sprintf("%s-%d%s", userID, s.now().Unix(), ext)
	url, err := s.uploader.Upload(ctx, key, contentType, body)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to upload photo")
		return nil, fmt.Errorf("failed to upload photo: %w", err)
	}

	if err := s.userRepo.UpdatePhotoURL(ctx, userID, url); err != nil {
		if err == model.ErrUserNotFound {
			return nil, err
		}
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to save photo URL")
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	s.logger.Info().Str("user_id", userID.String()).Str("photo_url", url).Msg("profile photo updated")
	return s.GetProfile(ctx, userID)
}
