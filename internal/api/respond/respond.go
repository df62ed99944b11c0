package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/cakeshelf/cakeshelf/internal/model"
)

// MessageResponse is the generic error/acknowledgement body: {message}.
type MessageResponse struct {
	Message string `json:"message"`
}

// ConflictResponse names the offending field alongside the message.
type ConflictResponse struct {
	Message string `json:"message"`
	Field   string `json:"field"`
}

// ValidationResponse lists every failing field in declaration order.
type ValidationResponse struct {
	Errors []model.FieldViolation `json:"errors"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// WriteMessage writes a {message} body with the given status code.
func WriteMessage(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, MessageResponse{Message: message})
}

// WriteBadRequest writes a 400 Bad Request {message} response.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteMessage(w, http.StatusBadRequest, message)
}

// WriteNotFound writes a 404 Not Found {message} response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteMessage(w, http.StatusNotFound, message)
}

// WriteInternalError writes a 500 response with a generic message. Internal
// detail is logged at the call site, never sent to the client.
func WriteInternalError(w http.ResponseWriter) {
	WriteMessage(w, http.StatusInternalServerError, "Internal server error")
}

// WriteValidationErrors writes a 400 response listing all field violations.
func WriteValidationErrors(w http.ResponseWriter, violations []model.FieldViolation) {
	WriteJSON(w, http.StatusBadRequest, ValidationResponse{Errors: violations})
}

// WriteConflict writes a 409 response naming the offending field.
func WriteConflict(w http.ResponseWriter, field, message string) {
	WriteJSON(w, http.StatusConflict, ConflictResponse{Message: message, Field: field})
}
