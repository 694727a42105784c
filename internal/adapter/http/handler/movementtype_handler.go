package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fondocore/fondo/internal/adapter/http/dto"
	"github.com/fondocore/fondo/internal/domain"
	"github.com/fondocore/fondo/internal/infrastructure/metrics"
	"github.com/fondocore/fondo/internal/usecase"
)

// MovementTypeHandler handles movement type catalog HTTP requests.
type MovementTypeHandler struct {
	typeUC  *usecase.MovementTypeUseCase
	metrics *metrics.Metrics
}

// NewMovementTypeHandler creates a new MovementTypeHandler.
func NewMovementTypeHandler(typeUC *usecase.MovementTypeUseCase, m *metrics.Metrics) *MovementTypeHandler {
	return &MovementTypeHandler{typeUC: typeUC, metrics: m}
}

// Create adds a new movement type at the end of its category scope.
func (h *MovementTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AddTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	config, err := h.typeUC.AddType(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create movement type", err.Error())

		return
	}

	h.metrics.TypesCreated.Inc()

	writeJSON(w, http.StatusCreated, dto.MovementTypeFromDomain(config))
}

// List lists the owner's catalog ordered by (category, order).
func (h *MovementTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "missing owner_id", "")
		return
	}

	types, err := h.typeUC.ListTypes(r.Context(), ownerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list movement types", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementTypesFromDomain(types))
}

// Reorder moves a type one position within its (owner, category) scope.
func (h *MovementTypeHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing movement type ID", "")
		return
	}

	var req dto.ReorderTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.typeUC.Reorder(r.Context(), id, domain.ReorderDirection(req.Direction)); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to reorder movement type", err.Error())

		return
	}

	h.metrics.TypeReorders.Inc()

	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a catalog entry. Historical entries referencing it keep
// their type ID and fall back to the name heuristic.
func (h *MovementTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing movement type ID", "")
		return
	}

	if err := h.typeUC.DeleteType(r.Context(), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete movement type", err.Error())

		return
	}

	h.metrics.TypesDeleted.Inc()

	w.WriteHeader(http.StatusNoContent)
}
