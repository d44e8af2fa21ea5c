package handler

import (
	"context"
	"io"
	"net/http"

	"pantry-hub/internal/middleware"
	"pantry-hub/internal/model"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Authenticate(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// MockAccountService is a mock implementation of AccountService.
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAccountService) UploadPhoto(ctx context.Context, userID uuid.UUID, contentType string, body io.Reader) (*model.User, error) {
	args := m.Called(ctx, userID, contentType, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockPantryService is a mock implementation of PantryService.
type MockPantryService struct {
	mock.Mock
}

func (m *MockPantryService) List(ctx context.Context, userID uuid.UUID) ([]model.Pantry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Pantry), args.Error(1)
}

func (m *MockPantryService) Create(ctx context.Context, userID uuid.UUID, req *model.CreatePantryRequest) (*model.Pantry, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pantry), args.Error(1)
}

func (m *MockPantryService) Join(ctx context.Context, userID uuid.UUID, code string) (*model.Pantry, error) {
	args := m.Called(ctx, userID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pantry), args.Error(1)
}

func (m *MockPantryService) Get(ctx context.Context, userID uuid.UUID, code string) (*model.Pantry, error) {
	args := m.Called(ctx, userID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pantry), args.Error(1)
}

func (m *MockPantryService) Update(ctx context.Context, userID uuid.UUID, code string, req *model.UpdatePantryRequest) (*model.Pantry, error) {
	args := m.Called(ctx, userID, code, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pantry), args.Error(1)
}

func (m *MockPantryService) Delete(ctx context.Context, userID uuid.UUID, code string) error {
	return m.Called(ctx, userID, code).Error(0)
}

func (m *MockPantryService) Leave(ctx context.Context, userID uuid.UUID, code string) error {
	return m.Called(ctx, userID, code).Error(0)
}

// MockItemService is a mock implementation of ItemService.
type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) List(ctx context.Context, userID uuid.UUID, code string, status string) ([]model.Item, error) {
	args := m.Called(ctx, userID, code, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Item), args.Error(1)
}

func (m *MockItemService) Create(ctx context.Context, userID uuid.UUID, code string, req *model.CreateItemRequest) (*model.Item, error) {
	args := m.Called(ctx, userID, code, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemService) Update(ctx context.Context, userID uuid.UUID, code string, id uuid.UUID, req *model.UpdateItemRequest) (*model.Item, error) {
	args := m.Called(ctx, userID, code, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemService) Delete(ctx context.Context, userID uuid.UUID, code string, id uuid.UUID) error {
	return m.Called(ctx, userID, code, id).Error(0)
}

// MockShoppingService is a mock implementation of ShoppingService.
type MockShoppingService struct {
	mock.Mock
}

func (m *MockShoppingService) List(ctx context.Context, userID uuid.UUID, code string) ([]model.ShoppingListItem, error) {
	args := m.Called(ctx, userID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ShoppingListItem), args.Error(1)
}

func (m *MockShoppingService) Create(ctx context.Context, userID uuid.UUID, code string, req *model.CreateShoppingItemRequest) (*model.ShoppingListItem, error) {
	args := m.Called(ctx, userID, code, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShoppingListItem), args.Error(1)
}

func (m *MockShoppingService) Update(ctx context.Context, userID uuid.UUID, code string, id uuid.UUID, req *model.UpdateShoppingItemRequest) (*model.ShoppingListItem, error) {
	args := m.Called(ctx, userID, code, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShoppingListItem), args.Error(1)
}

func (m *MockShoppingService) Delete(ctx context.Context, userID uuid.UUID, code string, id uuid.UUID) error {
	return m.Called(ctx, userID, code, id).Error(0)
}

func (m *MockShoppingService) Purchase(ctx context.Context, userID uuid.UUID, code string, id uuid.UUID, req *model.PurchaseRequest) (*model.Item, error) {
	args := m.Called(ctx, userID, code, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

// MockRecipeService is a mock implementation of RecipeService.
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) Search(ctx context.Context, query string) ([]model.Recipe, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeService) Suggest(ctx context.Context, userID uuid.UUID, code string) ([]model.Recipe, error) {
	args := m.Called(ctx, userID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

// MockNotificationService is a mock implementation of NotificationService.
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]model.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockNotificationService) GetSchedule(ctx context.Context) (model.Schedule, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Schedule), args.Error(1)
}

func (m *MockNotificationService) SetSchedule(ctx context.Context, schedule model.Schedule) (model.Schedule, error) {
	args := m.Called(ctx, schedule)
	return args.Get(0).(model.Schedule), args.Error(1)
}

// asUser attaches an authenticated user and route variables to req.
func asUser(req *http.Request, userID uuid.UUID, vars map[string]string) *http.Request {
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}
