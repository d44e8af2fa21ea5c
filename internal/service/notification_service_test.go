package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pantry-hub/internal/freshness"
	"pantry-hub/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotificationService(repo *MockNotificationRepository, store *MockScheduleStore, rescheduler Rescheduler) *notificationService {
	svc := NewNotificationService(repo, store, rescheduler, zerolog.Nop()).(*notificationService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestNotificationService_List(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	mockRepo := new(MockNotificationRepository)
	svc := newTestNotificationService(mockRepo, new(MockScheduleStore), nil)

	mockRepo.On("ListByUser", ctx, userID, true, notificationListLimit).Return([]model.Notification{
		{ItemName: "Milk", Status: freshness.StatusExpired},
		{ItemName: "Eggs", Status: freshness.StatusExpiringSoon, ExpiryDate: "2024-03-12"},
	}, nil)

	notifications, err := svc.List(ctx, userID, true)

	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, "Milk has expired", notifications[0].Text)
	assert.Equal(t, "Eggs is expiring soon (2024-03-12)", notifications[1].Text)
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	id := uuid.New()

	mockRepo := new(MockNotificationRepository)
	svc := newTestNotificationService(mockRepo, new(MockScheduleStore), nil)

	mockRepo.On("MarkRead", ctx, userID, id, fixedNow).Return(false, nil).Once()
	assert.Equal(t, model.ErrNotificationNotFound, svc.MarkRead(ctx, userID, id))

	mockRepo.On("MarkRead", ctx, userID, id, fixedNow).Return(true, nil).Once()
	assert.NoError(t, svc.MarkRead(ctx, userID, id))
}

func TestNotificationService_SetSchedule(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		schedule    model.Schedule
		storeErr    error
		expectError bool
		rearmed     bool
	}{
		{name: "Valid", schedule: model.Schedule{Hour: 18, Minute: 30}, rearmed: true},
		{name: "Midnight", schedule: model.Schedule{Hour: 0, Minute: 0}, rearmed: true},
		{name: "Hour out of range", schedule: model.Schedule{Hour: 24}, expectError: true},
		{name: "Minute out of range", schedule: model.Schedule{Hour: 9, Minute: -1}, expectError: true},
		{name: "Store failure", schedule: model.Schedule{Hour: 9}, storeErr: errors.New("redis down"), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockScheduleStore)
			mockRescheduler := new(MockRescheduler)
			svc := newTestNotificationService(new(MockNotificationRepository), mockStore, mockRescheduler)

			mockStore.On("Set", ctx, tt.schedule).Return(tt.storeErr)
			if tt.rearmed {
				mockRescheduler.On("Reschedule").Return()
			}

			got, err := svc.SetSchedule(ctx, tt.schedule)

			if tt.expectError {
				require.Error(t, err)
				mockRescheduler.AssertNotCalled(t, "Reschedule")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.schedule, got)
			mockRescheduler.AssertExpectations(t)
		})
	}
}

func TestNotificationService_GetSchedule(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockScheduleStore)
	svc := newTestNotificationService(new(MockNotificationRepository), mockStore, nil)

	mockStore.On("Get", ctx).Return(model.Schedule{Hour: 7, Minute: 15}, nil)

	schedule, err := svc.GetSchedule(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Schedule{Hour: 7, Minute: 15}, schedule)
}
