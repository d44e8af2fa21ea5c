package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pantry-hub/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecipeHandler_Search(t *testing.T) {
	recipes := []model.Recipe{{Label: "Omelette", URL: "https://example.com/omelette", Yield: 2}}

	tests := []struct {
		name           string
		target         string
		query          string
		mockReturn     []model.Recipe
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Success",
			target:         "/api/recipes?q=eggs",
			query:          "eggs",
			mockReturn:     recipes,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing query",
			target:         "/api/recipes",
			query:          "",
			mockError:      model.NewValidationError("search query is required"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Upstream unavailable",
			target:         "/api/recipes?q=eggs",
			query:          "eggs",
			mockError:      model.ErrRecipeAPIUnavailable,
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockRecipeService)
			handler := NewRecipeHandler(mockService, zerolog.Nop())
			mockService.On("Search", mock.Anything, tt.query).Return(tt.mockReturn, tt.mockError)

			w := httptest.NewRecorder()
			handler.Search(w, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var resp []model.Recipe
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, recipes, resp)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestRecipeHandler_Suggest(t *testing.T) {
	userID := uuid.New()
	mockService := new(MockRecipeService)
	handler := NewRecipeHandler(mockService, zerolog.Nop())
	mockService.On("Suggest", mock.Anything, userID, "ABC234").Return([]model.Recipe{}, nil)

	w := httptest.NewRecorder()
	handler.Suggest(w, asUser(httptest.NewRequest(http.MethodGet, "/", nil), userID, map[string]string{"code": "ABC234"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
