package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/cakeshelf/cakeshelf/internal/api/respond"
	"github.com/cakeshelf/cakeshelf/internal/model"
	"github.com/cakeshelf/cakeshelf/internal/services"
	"github.com/cakeshelf/cakeshelf/internal/validate"
)

// maxBodyBytes caps JSON request bodies at 1 MiB.
const maxBodyBytes = 1 << 20

// CakeHandler handles cake-related HTTP requests (thin transport layer).
type CakeHandler struct {
	cakeService *services.CakeService
	log         zerolog.Logger
}

// NewCakeHandler creates a new cake handler.
func NewCakeHandler(svc *services.CakeService, log zerolog.Logger) *CakeHandler {
	return &CakeHandler{cakeService: svc, log: log}
}

// ListCakes handles GET /cakes.
func (h *CakeHandler) ListCakes(w http.ResponseWriter, r *http.Request) {
	cakes, err := h.cakeService.List(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	// Never encode nil as null - return empty array instead
	if cakes == nil {
		cakes = []*model.CakeSummary{}
	}
	respond.WriteJSON(w, http.StatusOK, cakes)
}

// GetCake handles GET /cakes/{id}.
func (h *CakeHandler) GetCake(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cakeID(w, r)
	if !ok {
		return
	}

	cake, err := h.cakeService.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, cake)
}

// CreateCake handles POST /cakes.
func (h *CakeHandler) CreateCake(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	draft, violations := validate.CakeDraft(payload)
	if len(violations) > 0 {
		respond.WriteValidationErrors(w, violations)
		return
	}

	cake, err := h.cakeService.Create(r.Context(), draft)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, cake)
}

// UpdateCake handles PUT /cakes/{id}. The body is a partial draft: omitted
// fields keep their stored values.
func (h *CakeHandler) UpdateCake(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cakeID(w, r)
	if !ok {
		return
	}
	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	patch, violations := validate.CakePatch(payload)
	if len(violations) > 0 {
		respond.WriteValidationErrors(w, violations)
		return
	}

	cake, err := h.cakeService.Update(r.Context(), id, patch)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, cake)
}

// DeleteCake handles DELETE /cakes/{id}.
func (h *CakeHandler) DeleteCake(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cakeID(w, r)
	if !ok {
		return
	}

	if err := h.cakeService.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	respond.WriteMessage(w, http.StatusOK, "Cake deleted successfully")
}

// cakeID extracts and validates the path id. Invalid ids are rejected before
// any store access.
func (h *CakeHandler) cakeID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if fv := validate.CakeID(id); fv != nil {
		respond.WriteValidationErrors(w, []model.FieldViolation{*fv})
		return "", false
	}
	return id, true
}

func (h *CakeHandler) decodePayload(w http.ResponseWriter, r *http.Request) (map[string]interface{}, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return nil, false
	}
	return payload, true
}

// writeServiceError maps domain error kinds to HTTP responses. Anything
// unrecognized is logged and reduced to a generic 500 so store detail never
// reaches the client.
func (h *CakeHandler) writeServiceError(w http.ResponseWriter, err error) {
	if ve, ok := services.AsValidationError(err); ok {
		respond.WriteValidationErrors(w, ve.Violations)
		return
	}
	if ce, ok := services.AsConflictError(err); ok {
		respond.WriteConflict(w, ce.Field, ce.Message)
		return
	}
	if services.IsNotFoundError(err) {
		respond.WriteNotFound(w, err.Error())
		return
	}
	h.log.Error().Stack().Err(err).Msg("cake operation failed")
	respond.WriteInternalError(w)
}
