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

// ClosingHandler handles daily closing HTTP requests.
type ClosingHandler struct {
	closingUC *usecase.ClosingUseCase
	metrics   *metrics.Metrics
}

// NewClosingHandler creates a new ClosingHandler.
func NewClosingHandler(closingUC *usecase.ClosingUseCase, m *metrics.Metrics) *ClosingHandler {
	return &ClosingHandler{closingUC: closingUC, metrics: m}
}

// Create records a daily closing and synthesizes adjustments for non-zero
// diffs.
func (h *ClosingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateClosingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid closing date", err.Error())
		return
	}

	closing, err := h.closingUC.CreateClosing(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create closing", err.Error())

		return
	}

	h.metrics.ClosingsCreated.Inc()
	for _, currency := range domain.Currencies() {
		diff, _ := closing.Diff.Get(currency).Abs().Float64()
		h.metrics.ClosingDiff.WithLabelValues(string(currency)).Observe(diff)
		if !closing.Diff.Get(currency).IsZero() {
			kind := "overage"
			if closing.Diff.Get(currency).IsNegative() {
				kind = "shortage"
			}
			h.metrics.AdjustmentsSynthesized.WithLabelValues(string(currency), kind).Inc()
		}
	}

	writeJSON(w, http.StatusCreated, dto.ClosingFromDomain(closing))
}

// Get retrieves a closing by ID.
func (h *ClosingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing closing ID", "")
		return
	}

	closing, err := h.closingUC.GetClosing(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get closing", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ClosingFromDomain(closing))
}

// List lists closings for a company account.
func (h *ClosingHandler) List(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	accountID := r.URL.Query().Get("account_id")
	if companyID == "" || accountID == "" {
		writeError(w, http.StatusBadRequest, "missing company_id or account_id", "")
		return
	}

	closings, err := h.closingUC.ListClosings(r.Context(), usecase.ListClosingsInput{
		CompanyID: companyID,
		AccountID: domain.FundAccount(accountID),
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list closings", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ClosingsFromDomain(closings))
}

// Status derives the per-currency reconciliation state of a closing.
func (h *ClosingHandler) Status(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing closing ID", "")
		return
	}

	states, err := h.closingUC.Status(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get closing status", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ClosingStatusFromDomain(id, states))
}

// Adjustments lists the adjustment entries of a closing.
func (h *ClosingHandler) Adjustments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing closing ID", "")
		return
	}

	entries, err := h.closingUC.Adjustments(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list adjustments", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.MovementsFromDomain(entries))
}

// EditAdjustment changes an adjustment amount, appending to its audit trail.
func (h *ClosingHandler) EditAdjustment(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entryID")
	if entryID == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	var req dto.EditAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.closingUC.EditAdjustment(r.Context(), entryID, req.Amount)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to edit adjustment", err.Error())

		return
	}

	h.metrics.AdjustmentsEdited.Inc()

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(entry))
}

// RemoveAdjustments deletes a closing's adjustments and records the terminal
// resolution.
func (h *ClosingHandler) RemoveAdjustments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing closing ID", "")
		return
	}

	closing, err := h.closingUC.RemoveAdjustments(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to remove adjustments", err.Error())

		return
	}

	h.metrics.AdjustmentsRemoved.Inc()

	writeJSON(w, http.StatusOK, dto.ClosingFromDomain(closing))
}

// RepairAdjustments synthesizes missing adjustments for a closing left
// without them.
func (h *ClosingHandler) RepairAdjustments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing closing ID", "")
		return
	}

	created, err := h.closingUC.RepairAdjustments(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to repair adjustments", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.MovementsFromDomain(created))
}
