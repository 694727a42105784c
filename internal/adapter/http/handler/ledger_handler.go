package handler

import (
	"net/http"
	"time"

	"github.com/fondocore/fondo/internal/adapter/http/dto"
	"github.com/fondocore/fondo/internal/domain"
	"github.com/fondocore/fondo/internal/infrastructure/metrics"
	"github.com/fondocore/fondo/internal/usecase"
)

// LedgerHandler handles balance and consistency HTTP requests.
type LedgerHandler struct {
	ledgerUC      *usecase.LedgerUseCase
	consistencyUC *usecase.ConsistencyUseCase
	metrics       *metrics.Metrics
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC *usecase.LedgerUseCase, consistencyUC *usecase.ConsistencyUseCase, m *metrics.Metrics) *LedgerHandler {
	return &LedgerHandler{
		ledgerUC:      ledgerUC,
		consistencyUC: consistencyUC,
		metrics:       m,
	}
}

// Balance computes the per-currency balance of an account by replaying its
// entries. An optional "through" date bounds the replay.
func (h *LedgerHandler) Balance(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	accountID := r.URL.Query().Get("account_id")
	if companyID == "" || accountID == "" {
		writeError(w, http.StatusBadRequest, "missing company_id or account_id", "")
		return
	}

	input := usecase.BalanceInput{
		CompanyID: companyID,
		AccountID: domain.FundAccount(accountID),
	}
	if raw := r.URL.Query().Get("through"); raw != "" {
		date, err := time.Parse(domain.ClosingDateLayout, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid through date", err.Error())
			return
		}
		input.Through = domain.EndOfClosingDate(date)
	}

	balance, err := h.ledgerUC.Balance(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute balance", err.Error())

		return
	}

	through := input.Through
	if through.IsZero() {
		through = time.Now().UTC()
	}

	writeJSON(w, http.StatusOK, &dto.BalanceResponse{
		CompanyID: companyID,
		AccountID: accountID,
		Through:   through,
		Balance:   dto.MoneyFromDomain(balance),
	})
}

// ConsistencyCheck reports closings that still owe an adjustment.
func (h *LedgerHandler) ConsistencyCheck(w http.ResponseWriter, r *http.Request) {
	report, err := h.consistencyUC.Check(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check consistency", err.Error())
		return
	}

	h.metrics.OrphanedClosings.Set(float64(len(report.OrphanedClosings)))

	writeJSON(w, http.StatusOK, dto.ConsistencyReportFromDomain(report))
}

// ConsistencyRepair synthesizes missing adjustments for orphaned closings.
func (h *LedgerHandler) ConsistencyRepair(w http.ResponseWriter, r *http.Request) {
	repaired, err := h.consistencyUC.Repair(r.Context())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to repair consistency", err.Error())

		return
	}

	h.metrics.RepairsRun.Inc()

	writeJSON(w, http.StatusOK, map[string]int{"repaired": repaired})
}
