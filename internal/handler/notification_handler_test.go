package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pantry-hub/internal/freshness"
	"pantry-hub/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotificationHandler_List(t *testing.T) {
	userID := uuid.New()
	n := model.Notification{ID: uuid.New(), UserID: userID, ItemName: "Milk", Status: freshness.StatusExpired}
	n.Text = n.Message()

	tests := []struct {
		name           string
		query          string
		unread         bool
		expectedStatus int
		expectService  bool
	}{
		{"All", "", false, http.StatusOK, true},
		{"Unread only", "?unread=true", true, http.StatusOK, true},
		{"Invalid flag", "?unread=maybe", false, http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockNotificationService)
			handler := NewNotificationHandler(mockService, zerolog.Nop())
			if tt.expectService {
				mockService.On("List", mock.Anything, userID, tt.unread).Return([]model.Notification{n}, nil)
			}

			w := httptest.NewRecorder()
			handler.List(w, asUser(httptest.NewRequest(http.MethodGet, "/api/notifications"+tt.query, nil), userID, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectService {
				var resp []map[string]any
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				require.Len(t, resp, 1)
				assert.Equal(t, "Milk has expired", resp[0]["message"])
				assert.NotContains(t, resp[0], "userId")
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	userID := uuid.New()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockNotificationService)
		handler := NewNotificationHandler(mockService, zerolog.Nop())
		mockService.On("MarkRead", mock.Anything, userID, id).Return(nil)

		w := httptest.NewRecorder()
		handler.MarkRead(w, asUser(httptest.NewRequest(http.MethodPost, "/", nil), userID, map[string]string{"id": id.String()}))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Missing", func(t *testing.T) {
		mockService := new(MockNotificationService)
		handler := NewNotificationHandler(mockService, zerolog.Nop())
		mockService.On("MarkRead", mock.Anything, userID, id).Return(model.ErrNotificationNotFound)

		w := httptest.NewRecorder()
		handler.MarkRead(w, asUser(httptest.NewRequest(http.MethodPost, "/", nil), userID, map[string]string{"id": id.String()}))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestNotificationHandler_Schedule(t *testing.T) {
	t.Run("Get", func(t *testing.T) {
		mockService := new(MockNotificationService)
		handler := NewNotificationHandler(mockService, zerolog.Nop())
		mockService.On("GetSchedule", mock.Anything).Return(model.Schedule{Hour: 9, Minute: 0}, nil)

		w := httptest.NewRecorder()
		handler.GetSchedule(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"hour":9,"minute":0}`, w.Body.String())
	})

	t.Run("Set", func(t *testing.T) {
		mockService := new(MockNotificationService)
		handler := NewNotificationHandler(mockService, zerolog.Nop())
		mockService.On("SetSchedule", mock.Anything, model.Schedule{Hour: 18, Minute: 30}).Return(model.Schedule{Hour: 18, Minute: 30}, nil)

		w := httptest.NewRecorder()
		handler.SetSchedule(w, httptest.NewRequest(http.MethodPut, "/", bytes.NewBufferString(`{"hour":18,"minute":30}`)))

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Set invalid", func(t *testing.T) {
		mockService := new(MockNotificationService)
		handler := NewNotificationHandler(mockService, zerolog.Nop())
		mockService.On("SetSchedule", mock.Anything, model.Schedule{Hour: 25}).Return(model.Schedule{}, model.NewValidationError("hour must be between 0 and 23"))

		w := httptest.NewRecorder()
		handler.SetSchedule(w, httptest.NewRequest(http.MethodPut, "/", bytes.NewBufferString(`{"hour":25,"minute":0}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
