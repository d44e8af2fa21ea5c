package service

import (
	"context"
	"io"
	"time"

	"pantry-hub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) error {
	args := m.Called(ctx, id, displayName)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePhotoURL(ctx context.Context, id uuid.UUID, photoURL string) error {
	args := m.Called(ctx, id, photoURL)
	return args.Error(0)
}

// MockPantryRepository is a mock implementation of PantryRepository.
type MockPantryRepository struct {
	mock.Mock
}

func (m *MockPantryRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPantryRepository) Create(ctx context.Context, tx pgx.Tx, pantry *model.Pantry) error {
	args := m.Called(ctx, tx, pantry)
	return args.Error(0)
}

func (m *MockPantryRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockPantryRepository) GetByCode(ctx context.Context, code string) (*model.Pantry, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pantry), args.Error(1)
}

func (m *MockPantryRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, code string) (*model.Pantry, error) {
	args := m.Called(ctx, tx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pantry), args.Error(1)
}

func (m *MockPantryRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]model.Pantry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Pantry), args.Error(1)
}

func (m *MockPantryRepository) Update(ctx context.Context, pantry *model.Pantry) error {
	args := m.Called(ctx, pantry)
	return args.Error(0)
}

func (m *MockPantryRepository) Delete(ctx context.Context, tx pgx.Tx, code string) error {
	args := m.Called(ctx, tx, code)
	return args.Error(0)
}

func (m *MockPantryRepository) AddMember(ctx context.Context, tx pgx.Tx, code string, userID uuid.UUID) error {
	args := m.Called(ctx, tx, code, userID)
	return args.Error(0)
}

func (m *MockPantryRepository) RemoveMember(ctx context.Context, tx pgx.Tx, code string, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, tx, code, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockPantryRepository) IsMember(ctx context.Context, code string, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, code, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPantryRepository) Members(ctx context.Context, code string) ([]uuid.UUID, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockItemRepository is a mock implementation of ItemRepository.
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, tx pgx.Tx, item *model.Item) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, pantryCode string, id uuid.UUID) (*model.Item, error) {
	args := m.Called(ctx, pantryCode, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemRepository) ListByPantry(ctx context.Context, pantryCode string) ([]model.Item, error) {
	args := m.Called(ctx, pantryCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Item), args.Error(1)
}

func (m *MockItemRepository) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]model.Item, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Item), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, item *model.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, pantryCode string, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, pantryCode, id)
	return args.Bool(0), args.Error(1)
}

// MockShoppingRepository is a mock implementation of ShoppingRepository.
type MockShoppingRepository struct {
	mock.Mock
}

func (m *MockShoppingRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockShoppingRepository) Create(ctx context.Context, item *model.ShoppingListItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockShoppingRepository) GetByID(ctx context.Context, pantryCode string, id uuid.UUID) (*model.ShoppingListItem, error) {
	args := m.Called(ctx, pantryCode, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShoppingListItem), args.Error(1)
}

func (m *MockShoppingRepository) ListByPantry(ctx context.Context, pantryCode string) ([]model.ShoppingListItem, error) {
	args := m.Called(ctx, pantryCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ShoppingListItem), args.Error(1)
}

func (m *MockShoppingRepository) Update(ctx context.Context, item *model.ShoppingListItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockShoppingRepository) Delete(ctx context.Context, tx pgx.Tx, pantryCode string, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, tx, pantryCode, id)
	return args.Bool(0), args.Error(1)
}

// MockNotificationRepository is a mock implementation of NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) CreateBatch(ctx context.Context, notifications []model.Notification) (int, error) {
	args := m.Called(ctx, notifications)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]model.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, userID, id uuid.UUID, at time.Time) (bool, error) {
	args := m.Called(ctx, userID, id, at)
	return args.Bool(0), args.Error(1)
}

// MockUploader is a mock implementation of storage.Uploader.
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, body)
	return args.String(0), args.Error(1)
}

// MockRecipeSearcher is a mock implementation of RecipeSearcher.
type MockRecipeSearcher struct {
	mock.Mock
}

func (m *MockRecipeSearcher) Search(ctx context.Context, query string) ([]model.Recipe, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

// MockScheduleStore is a mock implementation of ScheduleStore.
type MockScheduleStore struct {
	mock.Mock
}

func (m *MockScheduleStore) Get(ctx context.Context) (model.Schedule, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Schedule), args.Error(1)
}

func (m *MockScheduleStore) Set(ctx context.Context, schedule model.Schedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

// MockRescheduler is a mock implementation of Rescheduler.
type MockRescheduler struct {
	mock.Mock
}

func (m *MockRescheduler) Reschedule() {
	m.Called()
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
	committed  bool
	rolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	m.committed = true
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	m.rolledBack = true
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }
