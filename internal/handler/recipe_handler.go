package handler

import (
	"net/http"

	"pantry-hub/internal/service"

	"github.com/rs/zerolog"
)

// RecipeHandler handles recipe search requests.
type RecipeHandler struct {
	service service.RecipeService
	logger  zerolog.Logger
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(service service.RecipeService, logger zerolog.Logger) *RecipeHandler {
	return &RecipeHandler{
		service: service,
		logger:  logger.With().Str("handler", "recipe").Logger(),
	}
}

// Search handles GET /api/recipes?q= requests.
func (h *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, recipes)
}

// Suggest handles GET /api/pantries/{code}/recipes requests.
func (h *RecipeHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}

	recipes, err := h.service.Suggest(r.Context(), userID, pantryCode(r))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, recipes)
}
