package handler

import (
	"net/http"
	"strconv"

	"pantry-hub/internal/model"
	"pantry-hub/internal/service"

	"github.com/rs/zerolog"
)

// NotificationHandler handles notification inbox and schedule requests.
type NotificationHandler struct {
	service service.NotificationService
	logger  zerolog.Logger
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(service service.NotificationService, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger.With().Str("handler", "notification").Logger(),
	}
}

// List handles GET /api/notifications requests; ?unread=true limits the
// result to unread notifications.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}

	unreadOnly := false
	if raw := r.URL.Query().Get("unread"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "unread must be true or false", h.logger)
			return
		}
		unreadOnly = parsed
	}

	notifications, err := h.service.List(r.Context(), userID, unreadOnly)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, notifications)
}

// MarkRead handles POST /api/notifications/{id}/read requests.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.service.MarkRead(r.Context(), userID, id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetSchedule handles GET /api/notifications/schedule requests.
func (h *NotificationHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.service.GetSchedule(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, schedule)
}

// SetSchedule handles PUT /api/notifications/schedule requests. The schedule
// is server-wide: one delivery time applies to every pantry.
func (h *NotificationHandler) SetSchedule(w http.ResponseWriter, r *http.Request) {
	var req model.Schedule
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	schedule, err := h.service.SetSchedule(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, schedule)
}
