package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"pantry-hub/internal/middleware"
	"pantry-hub/internal/model"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// MaxJSONBytes bounds JSON request bodies.
const MaxJSONBytes = 1 << 20

// errorStatus maps domain error codes to HTTP status codes.
var errorStatus = map[string]int{
	model.ErrCodeInvalidJSON:          http.StatusBadRequest,
	model.ErrCodeValidation:           http.StatusBadRequest,
	model.ErrCodeInvalidCredentials:   http.StatusUnauthorized,
	model.ErrCodeUnauthorised:         http.StatusUnauthorized,
	model.ErrCodeNotMember:            http.StatusForbidden,
	model.ErrCodeUserNotFound:         http.StatusNotFound,
	model.ErrCodePantryNotFound:       http.StatusNotFound,
	model.ErrCodeItemNotFound:         http.StatusNotFound,
	model.ErrCodeShoppingItemNotFound: http.StatusNotFound,
	model.ErrCodeNotificationNotFound: http.StatusNotFound,
	model.ErrCodeEmailTaken:           http.StatusConflict,
	model.ErrCodeAlreadyMember:        http.StatusConflict,
	model.ErrCodePantryFull:           http.StatusConflict,
	model.ErrCodeUnsupportedMedia:     http.StatusUnsupportedMediaType,
	model.ErrCodeRateLimited:          http.StatusTooManyRequests,
	model.ErrCodeRecipeAPIUnavailable: http.StatusServiceUnavailable,
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Warn().Str("error", code).Str("message", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeServiceError translates a service error into a response. Errors that
// are not domain errors are logged and reported as 500 without details.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status, ok := errorStatus[domainErr.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		writeError(w, status, domainErr.Code, domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("unexpected service error")
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Error:   model.ErrCodeInternalError,
		Message: "Something went wrong, please try again",
	})
}

// decodeJSON reads at most MaxJSONBytes of the request body into dst,
// writing 413 for oversized bodies and 400 for anything else.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, logger zerolog.Logger) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeBodyError(w, err, logger)
		return false
	}
	return true
}

// readBody reads at most MaxJSONBytes of an optional request body.
func readBody(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) ([]byte, bool) {
	if r.Body == nil || r.ContentLength == 0 {
		return nil, true
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxJSONBytes))
	if err != nil {
		writeBodyError(w, err, logger)
		return nil, false
	}
	return body, true
}

func writeBodyError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, model.ErrCodeValidation, "request body is too large", logger)
		return
	}
	writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
}

// decodeBytes unmarshals an already read body into dst, writing 400 on failure.
func decodeBytes(w http.ResponseWriter, body []byte, dst any, logger zerolog.Logger) bool {
	if err := json.Unmarshal(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}
	return true
}

// currentUser returns the authenticated user, writing 401 when absent.
func currentUser(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (uuid.UUID, bool) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "authentication required", logger)
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses a UUID route variable, writing 400 when malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string, logger zerolog.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid "+name+" format", logger)
		return uuid.Nil, false
	}
	return id, true
}

// pantryCode returns the {code} route variable.
func pantryCode(r *http.Request) string {
	return mux.Vars(r)["code"]
}
