package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pantry-hub/internal/auth"
	"pantry-hub/internal/model"
	"pantry-hub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	minPasswordLength = 8
	// bcrypt rejects longer input.
	maxPasswordLength = 72
)

// authService implements AuthService.
type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenIssuer
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenIssuer, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// Register creates an account and returns a signed token for it.
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if req == nil {
		return nil, model.NewValidationError("registration request is required")
	}

	email := normalizeEmail(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, model.NewValidationError("a valid email address is required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, model.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(req.Password) > maxPasswordLength {
		return nil, model.NewValidationError(fmt.Sprintf("password must be at most %d bytes", maxPasswordLength))
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = email[:strings.Index(email, "@")]
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == model.ErrEmailTaken {
			s.logger.Debug().Str("email", email).Msg("email already registered")
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return s.issue(user)
}

// Login verifies credentials and returns a signed token. Unknown emails and
// wrong passwords produce the same error.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if req == nil || len(req.Password) > maxPasswordLength {
		return nil, model.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up user")
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}
	if user == nil {
		return nil, model.ErrInvalidCredentials
	}

	ok, err := auth.CheckPassword(user.PasswordHash, req.Password)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to verify password")
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}
	if !ok {
		s.logger.Debug().Str("user_id", user.ID.String()).Msg("wrong password")
		return nil, model.ErrInvalidCredentials
	}

	return s.issue(user)
}

// Authenticate resolves a bearer token to a user ID.
func (s *authService) Authenticate(token string) (uuid.UUID, error) {
	return s.tokens.Parse(token)
}

func (s *authService) issue(user *model.User) (*model.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to issue token")
		return nil, err
	}
	return &model.AuthResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
