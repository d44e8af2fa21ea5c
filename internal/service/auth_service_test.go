package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pantry-hub/internal/auth"
	"pantry-hub/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "service-test-secret-0123"

func newTestAuthService(repo *MockUserRepository) (AuthService, *auth.TokenIssuer) {
	issuer := auth.NewTokenIssuer(testSecret, time.Hour)
	return NewAuthService(repo, issuer, zerolog.Nop()), issuer
}

func TestAuthService_Register_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	svc, issuer := newTestAuthService(mockRepo)

	mockRepo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "sam@example.com" && u.DisplayName == "Sam" && u.PasswordHash != "" && u.PasswordHash != "hunter2hunter2"
	})).Return(nil)

	resp, err := svc.Register(ctx, &model.RegisterRequest{
		Email:       "  Sam@Example.COM ",
		Password:    "hunter2hunter2",
		DisplayName: "Sam",
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.Token)

	userID, err := issuer.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_DefaultsDisplayName(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	svc, _ := newTestAuthService(mockRepo)

	mockRepo.On("Create", ctx, mock.AnythingOfType("*model.User")).Return(nil)

	resp, err := svc.Register(ctx, &model.RegisterRequest{Email: "alex@example.com", Password: "longenough"})

	require.NoError(t, err)
	assert.Equal(t, "alex", resp.User.DisplayName)
}

func TestAuthService_Register_Errors(t *testing.T) {
	tests := []struct {
		name     string
		req      *model.RegisterRequest
		repoErr  error
		wantCode string
	}{
		{name: "Missing at sign", req: &model.RegisterRequest{Email: "nobody", Password: "longenough"}, wantCode: model.ErrCodeValidation},
		{name: "Short password", req: &model.RegisterRequest{Email: "a@b.c", Password: "short"}, wantCode: model.ErrCodeValidation},
		{name: "Password over 72 bytes", req: &model.RegisterRequest{Email: "a@b.c", Password: strings.Repeat("x", 73)}, wantCode: model.ErrCodeValidation},
		{name: "Email taken", req: &model.RegisterRequest{Email: "a@b.c", Password: "longenough"}, repoErr: model.ErrEmailTaken, wantCode: model.ErrCodeEmailTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mockRepo := new(MockUserRepository)
			svc, _ := newTestAuthService(mockRepo)

			if tt.repoErr != nil {
				mockRepo.On("Create", ctx, mock.AnythingOfType("*model.User")).Return(tt.repoErr)
			}

			resp, err := svc.Register(ctx, tt.req)

			assert.Nil(t, resp)
			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.wantCode, domainErr.Code)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)

	user := &model.User{ID: uuid.New(), Email: "sam@example.com", PasswordHash: hash}

	tests := []struct {
		name        string
		email       string
		password    string
		found       *model.User
		repoErr     error
		expectedErr error
	}{
		{name: "Success", email: "SAM@example.com", password: "correct horse", found: user},
		{name: "Wrong password", email: "sam@example.com", password: "battery staple", found: user, expectedErr: model.ErrInvalidCredentials},
		{name: "Unknown email", email: "who@example.com", password: "correct horse", expectedErr: model.ErrInvalidCredentials},
		{name: "Database failure", email: "sam@example.com", password: "correct horse", repoErr: errors.New("down")},
		{name: "Password over 72 bytes", email: "sam@example.com", password: strings.Repeat("x", 73), found: user, expectedErr: model.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mockRepo := new(MockUserRepository)
			svc, _ := newTestAuthService(mockRepo)

			if tt.found != nil {
				mockRepo.On("GetByEmail", ctx, normalizeEmail(tt.email)).Return(tt.found, nil)
			} else {
				mockRepo.On("GetByEmail", ctx, normalizeEmail(tt.email)).Return(nil, tt.repoErr)
			}

			resp, err := svc.Login(ctx, &model.LoginRequest{Email: tt.email, Password: tt.password})

			switch {
			case tt.repoErr != nil:
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.repoErr)
			case tt.expectedErr != nil:
				assert.Equal(t, tt.expectedErr, err)
				assert.Nil(t, resp)
			default:
				require.NoError(t, err)
				assert.Equal(t, user.ID, resp.User.ID)
				assert.NotEmpty(t, resp.Token)
			}
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, issuer := newTestAuthService(new(MockUserRepository))

	userID := uuid.New()
	token, _, err := issuer.Issue(userID)
	require.NoError(t, err)

	got, err := svc.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	_, err = svc.Authenticate("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
