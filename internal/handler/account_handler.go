package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"pantry-hub/internal/model"
	"pantry-hub/internal/service"

	"github.com/rs/zerolog"
)

// MaxPhotoBytes caps the size of an uploaded profile photo.
const MaxPhotoBytes = 5 << 20

// AccountHandler handles profile requests for the signed-in user.
type AccountHandler struct {
	service service.AccountService
	logger  zerolog.Logger
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(service service.AccountService, logger zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		logger:  logger.With().Str("handler", "account").Logger(),
	}
}

// Get handles GET /api/account requests.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}

	user, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Update handles PATCH /api/account requests.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}

	var req model.UpdateProfileRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UploadPhoto handles POST /api/account/photo multipart uploads. The image
// is sent in the "photo" field; its type is sniffed from the content.
func (h *AccountHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}

	// Room for the multipart envelope on top of the photo itself.
	r.Body = http.MaxBytesReader(w, r.Body, MaxPhotoBytes+64<<10)

	file, _, err := r.FormFile("photo")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, model.ErrCodeValidation, "photo must be at most 5 MiB", h.logger)
			return
		}
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "multipart field \"photo\" is required", h.logger)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxPhotoBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "failed to read photo", h.logger)
		return
	}
	if len(data) > MaxPhotoBytes {
		writeError(w, http.StatusRequestEntityTooLarge, model.ErrCodeValidation, "photo must be at most 5 MiB", h.logger)
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "photo is empty", h.logger)
		return
	}

	contentType := http.DetectContentType(data)
	user, err := h.service.UploadPhoto(r.Context(), userID, contentType, bytes.NewReader(data))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
