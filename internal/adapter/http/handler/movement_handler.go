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

// MovementHandler handles movement-related HTTP requests.
type MovementHandler struct {
	movementUC *usecase.MovementUseCase
	metrics    *metrics.Metrics
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(movementUC *usecase.MovementUseCase, m *metrics.Metrics) *MovementHandler {
	return &MovementHandler{movementUC: movementUC, metrics: m}
}

// Create records a manual movement entry.
func (h *MovementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.movementUC.CreateMovement(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create movement", err.Error())

		return
	}

	h.metrics.MovementsCreated.WithLabelValues(string(entry.AccountID), string(entry.Currency)).Inc()
	amount, _ := entry.Amount().Float64()
	h.metrics.MovementAmount.WithLabelValues(string(entry.Currency)).Observe(amount)

	writeJSON(w, http.StatusCreated, dto.MovementFromDomain(entry))
}

// Get retrieves a movement entry by ID.
func (h *MovementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing movement ID", "")
		return
	}

	entry, err := h.movementUC.GetMovement(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get movement", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(entry))
}

// List lists movement entries for a company account.
func (h *MovementHandler) List(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	accountID := r.URL.Query().Get("account_id")
	if companyID == "" || accountID == "" {
		writeError(w, http.StatusBadRequest, "missing company_id or account_id", "")
		return
	}

	entries, err := h.movementUC.ListMovements(r.Context(), usecase.ListMovementsInput{
		CompanyID: companyID,
		AccountID: domain.FundAccount(accountID),
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list movements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementsFromDomain(entries))
}

// EditAmount changes the amount of an entry, appending to its audit trail.
func (h *MovementHandler) EditAmount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing movement ID", "")
		return
	}

	var req dto.EditAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.movementUC.EditAmount(r.Context(), id, req.Amount)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to edit movement", err.Error())

		return
	}

	h.metrics.MovementsEdited.Inc()

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(entry))
}

// Delete removes a regular movement entry.
func (h *MovementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing movement ID", "")
		return
	}

	if err := h.movementUC.DeleteMovement(r.Context(), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete movement", err.Error())

		return
	}

	h.metrics.MovementsDeleted.Inc()

	w.WriteHeader(http.StatusNoContent)
}
