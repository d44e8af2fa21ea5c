package handler

import (
	"net/http"

	"pantry-hub/internal/model"
	"pantry-hub/internal/service"

	"github.com/rs/zerolog"
)

// ItemHandler handles pantry item requests.
type ItemHandler struct {
	service service.ItemService
	logger  zerolog.Logger
}

// NewItemHandler creates a new item handler.
func NewItemHandler(service service.ItemService, logger zerolog.Logger) *ItemHandler {
	return &ItemHandler{
		service: service,
		logger:  logger.With().Str("handler", "item").Logger(),
	}
}

// List handles GET /api/pantries/{code}/items requests with an optional
// status filter.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}

	items, err := h.service.List(r.Context(), userID, pantryCode(r), r.URL.Query().Get("status"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// Create handles POST /api/pantries/{code}/items requests.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CreateItemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	item, err := h.service.Create(r.Context(), userID, pantryCode(r), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// Update handles PATCH /api/pantries/{code}/items/{id} requests.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req model.UpdateItemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	item, err := h.service.Update(r.Context(), userID, pantryCode(r), id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/pantries/{code}/items/{id} requests.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, pantryCode(r), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
