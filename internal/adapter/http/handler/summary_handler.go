package handler

import (
	"net/http"

	"github.com/fondocore/fondo/internal/adapter/http/dto"
	"github.com/fondocore/fondo/internal/infrastructure/metrics"
	"github.com/fondocore/fondo/internal/usecase"
)

// SummaryHandler handles aggregation HTTP requests.
type SummaryHandler struct {
	summaryUC *usecase.SummaryUseCase
	metrics   *metrics.Metrics

	// includeAdjustmentsDefault applies when the request omits the
	// include_adjustments parameter.
	includeAdjustmentsDefault bool
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryUC *usecase.SummaryUseCase, m *metrics.Metrics, includeAdjustmentsDefault bool) *SummaryHandler {
	return &SummaryHandler{
		summaryUC:                 summaryUC,
		metrics:                   m,
		includeAdjustmentsDefault: includeAdjustmentsDefault,
	}
}

// Get runs an aggregation over a company account's entries.
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := dto.SummaryRequest{
		CompanyID:          query.Get("company_id"),
		AccountID:          query.Get("account_id"),
		From:               query.Get("from"),
		To:                 query.Get("to"),
		Classification:     query.Get("classification"),
		TypeIDs:            query["type_id"],
		IncludeAdjustments: parseBoolQuery(r, "include_adjustments", h.includeAdjustmentsDefault),
		SortBy:             query.Get("sort_by"),
		SortDir:            query.Get("sort_dir"),
	}
	if req.CompanyID == "" || req.AccountID == "" {
		writeError(w, http.StatusBadRequest, "missing company_id or account_id", "")
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date range", err.Error())
		return
	}

	summary, err := h.summaryUC.Summarize(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to summarize", err.Error())

		return
	}

	h.metrics.SummariesServed.Inc()

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(summary))
}
