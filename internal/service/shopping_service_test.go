package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pantry-hub/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestShoppingService(shopping *MockShoppingRepository, items *MockItemRepository, pantries *MockPantryRepository) *shoppingService {
	svc := NewShoppingService(shopping, items, pantries, zerolog.Nop()).(*shoppingService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestShoppingService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	mockShopping := new(MockShoppingRepository)
	mockPantries := new(MockPantryRepository)
	svc := newTestShoppingService(mockShopping, new(MockItemRepository), mockPantries)

	mockPantries.On("IsMember", ctx, "ABC234", userID).Return(true, nil)
	mockShopping.On("Create", ctx, mock.AnythingOfType("*model.ShoppingListItem")).Return(nil)

	entry, err := svc.Create(ctx, userID, "ABC234", &model.CreateShoppingItemRequest{
		Name:     "Tomatoes",
		Quantity: 6,
		Notes:    " ripe ones ",
	})

	require.NoError(t, err)
	assert.Equal(t, "Tomatoes", entry.Name)
	assert.Equal(t, "ripe ones", entry.Notes)
	assert.Equal(t, "ABC234", entry.PantryCode)
	mockShopping.AssertExpectations(t)
}

func TestShoppingService_Create_Validation(t *testing.T) {
	mockShopping := new(MockShoppingRepository)
	svc := newTestShoppingService(mockShopping, new(MockItemRepository), new(MockPantryRepository))

	_, err := svc.Create(context.Background(), uuid.New(), "ABC234", &model.CreateShoppingItemRequest{Quantity: 1})

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
	mockShopping.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestShoppingService_Update(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	entryID := uuid.New()

	mockShopping := new(MockShoppingRepository)
	mockPantries := new(MockPantryRepository)
	svc := newTestShoppingService(mockShopping, new(MockItemRepository), mockPantries)

	mockPantries.On("IsMember", ctx, "ABC234", userID).Return(true, nil)
	mockShopping.On("GetByID", ctx, "ABC234", entryID).Return(&model.ShoppingListItem{
		ID: entryID, PantryCode: "ABC234", Name: "Bread", Quantity: 1, Notes: "sourdough",
	}, nil)
	mockShopping.On("Update", ctx, mock.AnythingOfType("*model.ShoppingListItem")).Return(nil)

	notes := "rye"
	entry, err := svc.Update(ctx, userID, "ABC234", entryID, &model.UpdateShoppingItemRequest{Notes: &notes})

	require.NoError(t, err)
	assert.Equal(t, "Bread", entry.Name)
	assert.Equal(t, "rye", entry.Notes)
}

func TestShoppingService_Delete_Missing(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	entryID := uuid.New()

	mockShopping := new(MockShoppingRepository)
	mockPantries := new(MockPantryRepository)
	svc := newTestShoppingService(mockShopping, new(MockItemRepository), mockPantries)

	mockPantries.On("IsMember", ctx, "ABC234", userID).Return(true, nil)
	mockShopping.On("Delete", ctx, nil, "ABC234", entryID).Return(false, nil)

	assert.Equal(t, model.ErrShoppingItemNotFound, svc.Delete(ctx, userID, "ABC234", entryID))
}

func TestShoppingService_Purchase_Success(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	entryID := uuid.New()

	mockShopping := new(MockShoppingRepository)
	mockItems := new(MockItemRepository)
	mockPantries := new(MockPantryRepository)
	mockTx := new(MockTx)
	svc := newTestShoppingService(mockShopping, mockItems, mockPantries)

	mockPantries.On("IsMember", ctx, "ABC234", userID).Return(true, nil)
	mockShopping.On("GetByID", ctx, "ABC234", entryID).Return(&model.ShoppingListItem{
		ID: entryID, PantryCode: "ABC234", Name: "Butter", Quantity: 250, Unit: "g",
	}, nil)
	mockShopping.On("BeginTx", ctx).Return(mockTx, nil)
	mockItems.On("Create", ctx, mockTx, mock.MatchedBy(func(item *model.Item) bool {
		return item.Name == "Butter" && item.Quantity == 250 && item.Unit == "g" && item.ExpiryDate == "2024-03-20"
	})).Return(nil)
	mockShopping.On("Delete", ctx, mockTx, "ABC234", entryID).Return(true, nil)
	mockTx.On("Commit", ctx).Return(nil)

	item, err := svc.Purchase(ctx, userID, "ABC234", entryID, &model.PurchaseRequest{ExpiryDate: "2024-03-20"})

	require.NoError(t, err)
	assert.Equal(t, "Butter", item.Name)
	assert.Equal(t, "ABC234", item.PantryCode)
	require.NotNil(t, item.DaysUntilExpiry)
	assert.Equal(t, 10, *item.DaysUntilExpiry)

	mockShopping.AssertExpectations(t)
	mockItems.AssertExpectations(t)
	mockTx.AssertExpectations(t)
	assert.False(t, mockTx.rolledBack)
}

func TestShoppingService_Purchase_RollsBack(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	entryID := uuid.New()

	tests := []struct {
		name        string
		createErr   error
		deleted     bool
		expectedErr error
	}{
		{name: "Item insert fails", createErr: errors.New("insert failed")},
		{name: "Entry vanished concurrently", deleted: false, expectedErr: model.ErrShoppingItemNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockShopping := new(MockShoppingRepository)
			mockItems := new(MockItemRepository)
			mockPantries := new(MockPantryRepository)
			mockTx := new(MockTx)
			svc := newTestShoppingService(mockShopping, mockItems, mockPantries)

			mockPantries.On("IsMember", ctx, "ABC234", userID).Return(true, nil)
			mockShopping.On("GetByID", ctx, "ABC234", entryID).Return(&model.ShoppingListItem{ID: entryID, Name: "Jam"}, nil)
			mockShopping.On("BeginTx", ctx).Return(mockTx, nil)
			mockItems.On("Create", ctx, mockTx, mock.AnythingOfType("*model.Item")).Return(tt.createErr)
			if tt.createErr == nil {
				mockShopping.On("Delete", ctx, mockTx, "ABC234", entryID).Return(tt.deleted, nil)
			}
			mockTx.On("Rollback", ctx).Return(nil)

			item, err := svc.Purchase(ctx, userID, "ABC234", entryID, nil)

			require.Error(t, err)
			assert.Nil(t, item)
			if tt.expectedErr != nil {
				assert.Equal(t, tt.expectedErr, err)
			}
			assert.True(t, mockTx.rolledBack)
			assert.False(t, mockTx.committed)
		})
	}
}

func TestShoppingService_Purchase_MissingEntry(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	entryID := uuid.New()

	mockShopping := new(MockShoppingRepository)
	mockPantries := new(MockPantryRepository)
	svc := newTestShoppingService(mockShopping, new(MockItemRepository), mockPantries)

	mockPantries.On("IsMember", ctx, "ABC234", userID).Return(true, nil)
	mockShopping.On("GetByID", ctx, "ABC234", entryID).Return(nil, nil)

	_, err := svc.Purchase(ctx, userID, "ABC234", entryID, nil)
	assert.Equal(t, model.ErrShoppingItemNotFound, err)
	mockShopping.AssertNotCalled(t, "BeginTx", mock.Anything)
}
