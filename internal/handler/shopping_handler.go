package handler

import (
	"net/http"

	"pantry-hub/internal/model"
	"pantry-hub/internal/service"

	"github.com/rs/zerolog"
)

// ShoppingHandler handles shopping list requests.
type ShoppingHandler struct {
	service service.ShoppingService
	logger  zerolog.Logger
}

// NewShoppingHandler creates a new shopping list handler.
func NewShoppingHandler(service service.ShoppingService, logger zerolog.Logger) *ShoppingHandler {
	return &ShoppingHandler{
		service: service,
		logger:  logger.With().Str("handler", "shopping").Logger(),
	}
}

// List handles GET /api/pantries/{code}/shopping requests.
func (h *ShoppingHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}

	entries, err := h.service.List(r.Context(), userID, pantryCode(r))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// Create handles POST /api/pantries/{code}/shopping requests.
func (h *ShoppingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CreateShoppingItemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	entry, err := h.service.Create(r.Context(), userID, pantryCode(r), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// Update handles PATCH /api/pantries/{code}/shopping/{id} requests.
func (h *ShoppingHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req model.UpdateShoppingItemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	entry, err := h.service.Update(r.Context(), userID, pantryCode(r), id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// Delete handles DELETE /api/pantries/{code}/shopping/{id} requests.
func (h *ShoppingHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Purchase handles POST /api/pantries/{code}/shopping/{id}/purchase requests.
// The body is optional.
func (h *ShoppingHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req model.PurchaseRequest
	body, ok := readBody(w, r, h.logger)
	if !ok {
		return
	}
	if len(body) > 0 && !decodeBytes(w, body, &req, h.logger) {
		return
	}

	item, err := h.service.Purchase(r.Context(), userID, pantryCode(r), id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}
