package handler

import (
	"net/http"

	"pantry-hub/internal/model"
	"pantry-hub/internal/service"

	"github.com/rs/zerolog"
)

// PantryHandler handles pantry lifecycle and membership requests.
type PantryHandler struct {
	service service.PantryService
	logger  zerolog.Logger
}

// NewPantryHandler creates a new pantry handler.
func NewPantryHandler(service service.PantryService, logger zerolog.Logger) *PantryHandler {
	return &PantryHandler{
		service: service,
		logger:  logger.With().Str("handler", "pantry").Logger(),
	}
}

// List handles GET /api/pantries requests.
func (h *PantryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}

	pantries, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, pantries)
}

// Create handles POST /api/pantries requests.
func (h *PantryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CreatePantryRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	pantry, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, pantry)
}

// Join handles POST /api/pantries/join requests.
func (h *PantryHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}

	var req model.JoinPantryRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "pantry code is required", h.logger)
		return
	}

	pantry, err := h.service.Join(r.Context(), userID, req.Code)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, pantry)
}

// Get handles GET /api/pantries/{code} requests.
func (h *PantryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}

	pantry, err := h.service.Get(r.Context(), userID, pantryCode(r))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, pantry)
}

// Update handles PATCH /api/pantries/{code} requests.
func (h *PantryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}

	var req model.UpdatePantryRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	pantry, err := h.service.Update(r.Context(), userID, pantryCode(r), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, pantry)
}

// Delete handles DELETE /api/pantries/{code} requests.
func (h *PantryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, pantryCode(r)); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Leave handles POST /api/pantries/{code}/leave requests.
func (h *PantryHandler) Leave(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.Leave(r.Context(), userID, pantryCode(r)); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
